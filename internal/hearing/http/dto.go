package http

import (
	"time"

	"github.com/nekogravitycat/hearing-scheduler/internal/hearing"
	"github.com/nekogravitycat/hearing-scheduler/internal/pkg/brtime"
	"github.com/nekogravitycat/hearing-scheduler/internal/pkg/request"
)

type HearingResponse struct {
	ID             string    `json:"id"`
	VaraID         string    `json:"varaId"`
	VaraNome       string    `json:"varaNome,omitempty"`
	NumeroProcesso string    `json:"numeroProcesso"`
	Data           string    `json:"data"`
	DiaSemana      string    `json:"diaSemana"`
	HorarioInicio  string    `json:"horarioInicio"`
	HorarioFim     string    `json:"horarioFim"`
	Duracao        int       `json:"duracao"`
	TipoAudiencia  string    `json:"tipoAudiencia"`
	Formato        string    `json:"formato"`
	Status         string    `json:"status"`
	Observacoes    string    `json:"observacoes"`
	CriadoEm       time.Time `json:"criadoEm"`
	AtualizadoEm   time.Time `json:"atualizadoEm"`
}

func NewHearingResponse(h *hearing.Hearing) HearingResponse {
	return HearingResponse{
		ID:             h.ID,
		VaraID:         h.VenueID,
		VaraNome:       h.VenueName,
		NumeroProcesso: h.CaseNumber,
		Data:           brtime.FormatDate(h.Date),
		DiaSemana:      brtime.WeekdayName(h.Date),
		HorarioInicio:  brtime.FormatTime(h.Start),
		HorarioFim:     brtime.FormatTime(h.End),
		Duracao:        h.DurationMinutes,
		TipoAudiencia:  string(h.Type),
		Formato:        string(h.Format),
		Status:         string(h.Status),
		Observacoes:    h.Notes,
		CriadoEm:       h.CreatedAt,
		AtualizadoEm:   h.UpdatedAt,
	}
}

// ListHearingsRequest defines query parameters for listing hearings.
type ListHearingsRequest struct {
	VaraID         string `form:"varaId" binding:"omitempty,uuid"`
	NumeroProcesso string `form:"numeroProcesso"`
	Status         string `form:"status" binding:"omitempty,oneof=designada realizada parcialmente_realizada cancelada redesignada"`
	DataInicio     string `form:"dataInicio"`
	DataFim        string `form:"dataFim"`
	request.PageRequest
}

func (r *ListHearingsRequest) ToFilter() (hearing.Filter, error) {
	f := hearing.Filter{
		VenueID:    r.VaraID,
		CaseNumber: r.NumeroProcesso,
		Status:     hearing.Status(r.Status),
	}
	f.Page, f.PageSize = request.ClampPage(r.Page, r.PageSize)
	if r.DataInicio != "" {
		d, err := brtime.ParseDate(r.DataInicio)
		if err != nil {
			return hearing.Filter{}, err
		}
		f.DateFrom = &d
	}
	if r.DataFim != "" {
		d, err := brtime.ParseDate(r.DataFim)
		if err != nil {
			return hearing.Filter{}, err
		}
		f.DateTo = &d
	}
	return f, nil
}

type CreateHearingRequest struct {
	VaraID         string `json:"varaId" binding:"required,uuid"`
	NumeroProcesso string `json:"numeroProcesso" binding:"required"`
	Data           string `json:"data" binding:"required"`
	HorarioInicio  string `json:"horarioInicio" binding:"required"`
	Duracao        int    `json:"duracao" binding:"required"`
	TipoAudiencia  string `json:"tipoAudiencia"`
	Formato        string `json:"formato"`
	Status         string `json:"status"`
	Observacoes    string `json:"observacoes"`
}

func (r *CreateHearingRequest) ToServiceRequest() (hearing.CreateRequest, error) {
	date, err := brtime.ParseDate(r.Data)
	if err != nil {
		return hearing.CreateRequest{}, err
	}
	start, err := brtime.ParseTime(r.HorarioInicio)
	if err != nil {
		return hearing.CreateRequest{}, err
	}
	return hearing.CreateRequest{
		VenueID:         r.VaraID,
		CaseNumber:      r.NumeroProcesso,
		Date:            date,
		Start:           start,
		DurationMinutes: r.Duracao,
		Type:            hearing.Type(r.TipoAudiencia),
		Format:          hearing.Format(r.Formato),
		Status:          hearing.Status(r.Status),
		Notes:           r.Observacoes,
	}, nil
}

type UpdateHearingRequest struct {
	VaraID         *string `json:"varaId" binding:"omitempty,uuid"`
	NumeroProcesso *string `json:"numeroProcesso"`
	Data           *string `json:"data"`
	HorarioInicio  *string `json:"horarioInicio"`
	Duracao        *int    `json:"duracao"`
	TipoAudiencia  *string `json:"tipoAudiencia"`
	Formato        *string `json:"formato"`
	Status         *string `json:"status"`
	Observacoes    *string `json:"observacoes"`
}

func (r *UpdateHearingRequest) ToServiceRequest() (hearing.UpdateRequest, error) {
	req := hearing.UpdateRequest{
		VenueID:         r.VaraID,
		CaseNumber:      r.NumeroProcesso,
		DurationMinutes: r.Duracao,
		Notes:           r.Observacoes,
	}
	if r.Data != nil {
		d, err := brtime.ParseDate(*r.Data)
		if err != nil {
			return hearing.UpdateRequest{}, err
		}
		req.Date = &d
	}
	if r.HorarioInicio != nil {
		c, err := brtime.ParseTime(*r.HorarioInicio)
		if err != nil {
			return hearing.UpdateRequest{}, err
		}
		req.Start = &c
	}
	if r.TipoAudiencia != nil {
		t := hearing.Type(*r.TipoAudiencia)
		req.Type = &t
	}
	if r.Formato != nil {
		f := hearing.Format(*r.Formato)
		req.Format = &f
	}
	if r.Status != nil {
		s := hearing.Status(*r.Status)
		req.Status = &s
	}
	return req, nil
}
