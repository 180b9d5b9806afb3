package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Simplici0/agrokalk/internal/catalog"
	"github.com/Simplici0/agrokalk/internal/importer"
)

const (
	msgNotPersisted = "Zmiany zastosowano, ale nie udało się ich zapisać."
	msgImportFailed = "Wystąpił błąd podczas przetwarzania pliku. Upewnij się, że ma poprawny format."
)

var errMachineNotFound = errors.New("machine not found")

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type catalogResponse struct {
	Machines []catalog.Machine `json:"machines"`
	Warning  string            `json:"warning,omitempty"`
}

type machineResponse struct {
	Machine catalog.Machine `json:"machine"`
	Warning string          `json:"warning,omitempty"`
}

type editRequest struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

type addRequest struct {
	Producer string `json:"producer"`
}

type sheetImportRequest struct {
	Range string `json:"range"`
}

type importResponse struct {
	importer.Result
	Message string `json:"message"`
	Warning string `json:"warning,omitempty"`
}

func (s *server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Nieprawidłowe dane żądania.", "")
		return
	}

	valid, err := s.auth.validateCredentials(r.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		s.logger.Error("validate credentials", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Błąd uwierzytelniania.", "")
		return
	}
	if !valid {
		writeError(w, http.StatusUnauthorized, "Nieprawidłowy e-mail lub hasło.", "")
		return
	}

	s.auth.setSessionCookie(w, strings.TrimSpace(req.Email))
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.auth.clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// warning turns a persist failure into a response warning; other errors
// are returned unchanged.
func warning(err error) (string, error) {
	if err == nil {
		return "", nil
	}
	if errors.Is(err, catalog.ErrNotPersisted) {
		return msgNotPersisted, nil
	}
	return "", err
}

func (s *server) handleAdminList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalogResponse{Machines: s.store.Load(r.Context())})
}

func (s *server) handleAdminReplace(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Machines []catalog.Machine `json:"machines"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Nieprawidłowe dane katalogu.", "machines")
		return
	}

	seen := make(map[int64]bool, len(req.Machines))
	for _, m := range req.Machines {
		if seen[m.ID] {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Zduplikowany identyfikator %d.", m.ID), "id")
			return
		}
		seen[m.ID] = true
	}

	warn, err := warning(s.store.Replace(r.Context(), req.Machines))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Nie udało się zastąpić katalogu.", "")
		return
	}
	writeJSON(w, http.StatusOK, catalogResponse{Machines: s.store.Load(r.Context()), Warning: warn})
}

func (s *server) handleAdminAdd(w http.ResponseWriter, r *http.Request) {
	var req addRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Nieprawidłowe dane żądania.", "")
		return
	}
	producer, err := catalog.ParseProducer(req.Producer)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Nieznany producent.", "producer")
		return
	}

	var added catalog.Machine
	_, err = s.store.Update(r.Context(), func(ms []catalog.Machine) ([]catalog.Machine, error) {
		services, err := catalog.NewServices(producer)
		if err != nil {
			return nil, err
		}
		added = catalog.Machine{ID: nextID(ms, s.now()), Services: services}
		return append(ms, added), nil
	})
	warn, err := warning(err)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Nie udało się dodać wiersza.", "")
		return
	}
	writeJSON(w, http.StatusCreated, machineResponse{Machine: added, Warning: warn})
}

// nextID uses the clock in milliseconds, bumped past any existing id.
func nextID(ms []catalog.Machine, now time.Time) int64 {
	id := now.UnixMilli()
	for _, m := range ms {
		if m.ID >= id {
			id = m.ID + 1
		}
	}
	return id
}

func machineID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

func (s *server) handleAdminEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := machineID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Nieprawidłowy identyfikator maszyny.", "id")
		return
	}
	var req editRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Nieprawidłowe dane żądania.", "")
		return
	}

	var edited catalog.Machine
	_, err := s.store.Update(r.Context(), func(ms []catalog.Machine) ([]catalog.Machine, error) {
		for i := range ms {
			if ms[i].ID != id {
				continue
			}
			if err := catalog.ApplyEdit(&ms[i], req.Field, req.Value); err != nil {
				return nil, err
			}
			edited = ms[i].Clone()
			return ms, nil
		}
		return nil, errMachineNotFound
	})

	warn, err := warning(err)
	switch {
	case errors.Is(err, errMachineNotFound):
		writeError(w, http.StatusNotFound, "Nie znaleziono maszyny.", "id")
	case errors.Is(err, catalog.ErrUnknownField):
		writeError(w, http.StatusBadRequest, "Nieznane pole.", "field")
	case err != nil:
		writeError(w, http.StatusInternalServerError, "Nie udało się zapisać zmiany.", "")
	default:
		writeJSON(w, http.StatusOK, machineResponse{Machine: edited, Warning: warn})
	}
}

func (s *server) handleAdminDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := machineID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Nieprawidłowy identyfikator maszyny.", "id")
		return
	}

	remaining, err := s.store.Update(r.Context(), func(ms []catalog.Machine) ([]catalog.Machine, error) {
		for i := range ms {
			if ms[i].ID == id {
				return append(ms[:i], ms[i+1:]...), nil
			}
		}
		return nil, errMachineNotFound
	})

	warn, err := warning(err)
	switch {
	case errors.Is(err, errMachineNotFound):
		writeError(w, http.StatusNotFound, "Nie znaleziono maszyny.", "id")
	case err != nil:
		writeError(w, http.StatusInternalServerError, "Nie udało się usunąć wiersza.", "")
	default:
		writeJSON(w, http.StatusOK, catalogResponse{Machines: remaining, Warning: warn})
	}
}

func (s *server) importProducer(w http.ResponseWriter, r *http.Request) (catalog.Producer, bool) {
	producer, err := catalog.ParseProducer(chi.URLParam(r, "producer"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Nieznany producent.", "producer")
		return "", false
	}
	return producer, true
}

func (s *server) handleImportXLSX(w http.ResponseWriter, r *http.Request) {
	producer, ok := s.importProducer(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, importer.MaxUploadSize+1<<16)
	if err := r.ParseMultipartForm(importer.MaxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "Plik jest za duży lub nieprawidłowy (maks. 10MB).", "file")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Brak pliku.", "file")
		return
	}
	defer file.Close()
	if header.Size > importer.MaxUploadSize {
		writeError(w, http.StatusBadRequest, "Plik jest za duży (maks. 10MB).", "file")
		return
	}

	s.respondImport(r.Context(), w, "file", func(ctx context.Context) (importer.Result, error) {
		return s.importer.ImportXLSX(ctx, producer, file)
	})
}

func (s *server) handleImportSheet(w http.ResponseWriter, r *http.Request) {
	producer, ok := s.importProducer(w, r)
	if !ok {
		return
	}
	if !s.importer.SheetsEnabled() {
		writeError(w, http.StatusNotImplemented, "Import z Google Sheets nie jest skonfigurowany.", "")
		return
	}

	var req sheetImportRequest
	if err := decodeJSON(w, r, &req); err != nil || strings.TrimSpace(req.Range) == "" {
		writeError(w, http.StatusBadRequest, "Proszę podać zakres arkusza.", "range")
		return
	}

	s.respondImport(r.Context(), w, "range", func(ctx context.Context) (importer.Result, error) {
		return s.importer.ImportSheet(ctx, producer, strings.TrimSpace(req.Range))
	})
}

func (s *server) respondImport(ctx context.Context, w http.ResponseWriter, field string, run func(context.Context) (importer.Result, error)) {
	res, err := run(ctx)
	warn, err := warning(err)
	if err != nil {
		s.logger.Warn("import rejected", zap.Error(err))
		writeError(w, http.StatusUnprocessableEntity, msgImportFailed, field)
		return
	}
	writeJSON(w, http.StatusOK, importResponse{
		Result:  res,
		Message: fmt.Sprintf("Zaimportowano pomyślnie %d maszyn.", res.Count),
		Warning: warn,
	})
}
