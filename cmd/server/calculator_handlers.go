package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Simplici0/agrokalk/internal/calculator"
	"github.com/Simplici0/agrokalk/internal/catalog"
	"github.com/Simplici0/agrokalk/internal/pricing"
)

type producerView struct {
	Producer catalog.Producer `json:"producer"`
	Machines int              `json:"machines"`
}

type modelView struct {
	Machine catalog.Machine `json:"machine"`
	Offers  []pricing.Offer `json:"offers"`
}

type quoteEntry struct {
	Type      string     `json:"type"`
	MachineID flexString `json:"machine_id"`
}

type quoteRequest struct {
	Producer string          `json:"producer"`
	Entries  []quoteEntry    `json:"entries"`
	Distance flexString      `json:"distance"`
	Services map[string]bool `json:"services"`
}

type amountView struct {
	Amount    decimal.Decimal `json:"amount"`
	Formatted string          `json:"formatted"`
}

type transportBasis struct {
	Name          string  `json:"name"`
	Weight        float64 `json:"weight"`
	Rate          float64 `json:"rate"`
	RateFormatted string  `json:"rate_formatted"`
}

type quoteResponse struct {
	Producer   catalog.Producer           `json:"producer"`
	Machines   []catalog.Machine          `json:"machines"`
	Basis      *transportBasis            `json:"transport_basis,omitempty"`
	Services   []calculator.MachineOffers `json:"services"`
	Transport  *amountView                `json:"transport,omitempty"`
	Additional amountView                 `json:"additional"`
	Total      amountView                 `json:"total"`
	Labels     calculator.Labels          `json:"labels"`
}

func amount(d decimal.Decimal) amountView {
	return amountView{Amount: d.Round(2), Formatted: pricing.FormatPLN(d)}
}

func (s *server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleProducers(w http.ResponseWriter, r *http.Request) {
	counts := s.store.CountByProducer(r.Context())
	out := make([]producerView, 0, len(catalog.Producers))
	for _, p := range catalog.Producers {
		out = append(out, producerView{Producer: p, Machines: counts[p]})
	}
	writeJSON(w, http.StatusOK, out)
}

// sessionFor starts a calculator session for the {producer} URL parameter.
func (s *server) sessionFor(w http.ResponseWriter, r *http.Request, raw string) (*calculator.Session, bool) {
	producer, err := catalog.ParseProducer(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Nieznany producent.", "producer")
		return nil, false
	}
	sess := calculator.NewSession(s.store.Load(r.Context()))
	if err := sess.SelectProducer(producer); err != nil {
		writeError(w, http.StatusBadRequest, "Nieznany producent.", "producer")
		return nil, false
	}
	return sess, true
}

func (s *server) handleTypes(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFor(w, r, chi.URLParam(r, "producer"))
	if !ok {
		return
	}
	types := sess.Types()
	if types == nil {
		types = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"types": types})
}

func (s *server) handleModels(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFor(w, r, chi.URLParam(r, "producer"))
	if !ok {
		return
	}
	typ := r.URL.Query().Get("type")
	if typ == "" {
		writeError(w, http.StatusBadRequest, "Proszę wybrać typ maszyny.", "type")
		return
	}

	models := sess.Models(typ)
	out := make([]modelView, 0, len(models))
	for _, m := range models {
		out = append(out, modelView{Machine: m, Offers: pricing.Offers(m)})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"label":    calculator.ModelLabel(typ),
		"machines": out,
	})
}

func (s *server) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Nieprawidłowe dane żądania.", "")
		return
	}

	sess, ok := s.sessionFor(w, r, req.Producer)
	if !ok {
		return
	}
	producer := sess.Producer()

	for i, e := range req.Entries {
		id := sess.Entries()[0].ID
		if i > 0 {
			id = sess.AddEntry()
		}
		_ = sess.SetEntryType(id, e.Type)
		_ = sess.SetEntryMachine(id, string(e.MachineID))
	}

	for raw, on := range req.Services {
		ref, err := pricing.ParseServiceRef(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Nieprawidłowa usługa.", "services")
			return
		}
		sess.SetService(ref.MachineID, ref.Key, on)
	}

	sess.SetDistance(string(req.Distance))
	b, err := sess.Calculate()
	s.metrics.ObserveQuote(producer, err)
	if err != nil {
		field := ""
		switch {
		case errors.Is(err, pricing.ErrInvalidDistance):
			field = "distance"
		case errors.Is(err, pricing.ErrNoSelection):
			field = "entries"
		}
		writeError(w, http.StatusBadRequest, pricing.UserMessage(err), field)
		return
	}

	sel := sess.Selection()
	resp := quoteResponse{
		Producer:   producer,
		Machines:   sel.Machines,
		Services:   sess.Services(),
		Additional: amount(b.Additional),
		Total:      amount(b.Total),
		Labels:     sess.Labels(),
	}
	if b.TransportApplies {
		t := amount(b.Transport)
		resp.Transport = &t
		resp.Basis = &transportBasis{
			Name:          sel.Governing.Name(),
			Weight:        sel.Governing.Weight,
			Rate:          sel.Governing.Rate,
			RateFormatted: pricing.FormatRate(sel.Governing.Rate) + " zł/km",
		}
	}

	s.logger.Debug("quote calculated",
		zap.String("producer", string(producer)),
		zap.Int64s("machines", sel.IDs()),
		zap.String("total", b.Total.StringFixed(2)),
	)
	writeJSON(w, http.StatusOK, resp)
}
