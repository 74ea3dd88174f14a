package http

import (
	"github.com/nekogravitycat/hearing-scheduler/internal/pkg/apperror"
	"github.com/nekogravitycat/hearing-scheduler/internal/pkg/brtime"
	"github.com/nekogravitycat/hearing-scheduler/internal/schedule"
)

// Defaults of the quick search, which only exposes a single buffer.
const (
	QuickBufferMinutes = 10
	QuickGridMinutes   = 15
	QuickMinGapMinutes = 5
)

// ConflictQueryRequest defines query parameters for a conflict check.
// Either duracao or horarioFim must be set.
type ConflictQueryRequest struct {
	Data               string `form:"data" binding:"required"`
	HorarioInicio      string `form:"horarioInicio" binding:"required"`
	HorarioFim         string `form:"horarioFim"`
	Duracao            int    `form:"duracao" binding:"omitempty,min=1"`
	VaraID             string `form:"varaId" binding:"required"`
	AudienciaIDExcluir string `form:"audienciaIdExcluir"`
}

func (r *ConflictQueryRequest) ToQuery() (schedule.ConflictQuery, error) {
	date, err := brtime.ParseDate(r.Data)
	if err != nil {
		return schedule.ConflictQuery{}, err
	}
	start, err := brtime.ParseTime(r.HorarioInicio)
	if err != nil {
		return schedule.ConflictQuery{}, err
	}

	var end schedule.Clock
	switch {
	case r.Duracao > 0:
		end = start + schedule.Clock(r.Duracao)
	case r.HorarioFim != "":
		if end, err = brtime.ParseTime(r.HorarioFim); err != nil {
			return schedule.ConflictQuery{}, err
		}
	default:
		return schedule.ConflictQuery{}, apperror.Validation("duracao or horarioFim is required")
	}

	candidate, err := schedule.NewInterval(r.VaraID, date, start, end, "")
	if err != nil {
		return schedule.ConflictQuery{}, err
	}
	return schedule.ConflictQuery{Candidate: candidate, ExcludeHearingID: r.AudienciaIDExcluir}, nil
}

type ConflictResponse struct {
	ID             string `json:"id"`
	NumeroProcesso string `json:"numeroProcesso"`
	Data           string `json:"data"`
	HorarioInicio  string `json:"horarioInicio"`
	HorarioFim     string `json:"horarioFim"`
	VaraID         string `json:"varaId"`
	VaraNome       string `json:"varaNome"`
}

func NewConflictResponse(b schedule.Booking) ConflictResponse {
	return ConflictResponse{
		ID:             b.HearingID,
		NumeroProcesso: b.CaseNumber,
		Data:           brtime.FormatDate(b.Date),
		HorarioInicio:  brtime.FormatTime(b.Start),
		HorarioFim:     brtime.FormatTime(b.End),
		VaraID:         b.VenueID,
		VaraNome:       b.VenueName,
	}
}

func NewConflictResponses(bookings []schedule.Booking) []ConflictResponse {
	out := make([]ConflictResponse, len(bookings))
	for i, b := range bookings {
		out[i] = NewConflictResponse(b)
	}
	return out
}

// FreeSlotRequest is the body of a free-slot search. A null varaId searches every venue.
type FreeSlotRequest struct {
	DataInicio          string          `json:"dataInicio" binding:"required"`
	DataFim             string          `json:"dataFim" binding:"required"`
	VaraID              *string         `json:"varaId"`
	DuracaoMinutos      int             `json:"duracaoMinutos" binding:"required"`
	BufferAntesMinutos  int             `json:"bufferAntesMinutos"`
	BufferDepoisMinutos int             `json:"bufferDepoisMinutos"`
	GradeMinutos        int             `json:"gradeMinutos"`
	GapMinimoMinutos    int             `json:"gapMinimoMinutos"`
	FatiarIntervalos    bool            `json:"fatiarIntervalos"`
	Janelas             []brtime.Janela `json:"janelas" binding:"omitempty,dive"`
}

func (r *FreeSlotRequest) ToQuery() (schedule.FreeSlotQuery, error) {
	from, err := brtime.ParseDate(r.DataInicio)
	if err != nil {
		return schedule.FreeSlotQuery{}, err
	}
	to, err := brtime.ParseDate(r.DataFim)
	if err != nil {
		return schedule.FreeSlotQuery{}, err
	}
	windows, err := brtime.ParseJanelas(r.Janelas)
	if err != nil {
		return schedule.FreeSlotQuery{}, err
	}

	q := schedule.FreeSlotQuery{
		DateStart:           from,
		DateEnd:             to,
		DurationMinutes:     r.DuracaoMinutos,
		BufferBeforeMinutes: r.BufferAntesMinutos,
		BufferAfterMinutes:  r.BufferDepoisMinutos,
		GridMinutes:         r.GradeMinutos,
		MinGapMinutes:       r.GapMinimoMinutos,
		Windows:             windows,
		Tile:                r.FatiarIntervalos,
	}
	if r.VaraID != nil {
		q.VenueID = *r.VaraID
	}
	return q, nil
}

// QuickFreeSlotRequest defines query parameters for the quick free-slot search.
type QuickFreeSlotRequest struct {
	DataInicio string `form:"dataInicio" binding:"required"`
	DataFim    string `form:"dataFim" binding:"required"`
	Duracao    int    `form:"duracao" binding:"required"`
	VaraID     string `form:"varaId"`
	Buffer     *int   `form:"buffer"`
	Grade      *int   `form:"grade"`
}

func (r *QuickFreeSlotRequest) ToQuery() (schedule.FreeSlotQuery, error) {
	from, err := brtime.ParseDate(r.DataInicio)
	if err != nil {
		return schedule.FreeSlotQuery{}, err
	}
	to, err := brtime.ParseDate(r.DataFim)
	if err != nil {
		return schedule.FreeSlotQuery{}, err
	}

	buffer, grid := QuickBufferMinutes, QuickGridMinutes
	if r.Buffer != nil {
		buffer = *r.Buffer
	}
	if r.Grade != nil {
		grid = *r.Grade
	}
	return schedule.FreeSlotQuery{
		DateStart:           from,
		DateEnd:             to,
		VenueID:             r.VaraID,
		DurationMinutes:     r.Duracao,
		BufferBeforeMinutes: buffer,
		BufferAfterMinutes:  buffer,
		GridMinutes:         grid,
		MinGapMinutes:       QuickMinGapMinutes,
	}, nil
}

type SlotResponse struct {
	Data           string `json:"data"`
	DiaSemana      string `json:"diaSemana"`
	HorarioInicio  string `json:"horarioInicio"`
	HorarioFim     string `json:"horarioFim"`
	DuracaoMinutos int    `json:"duracaoMinutos"`
	VaraID         string `json:"varaId"`
	VaraNome       string `json:"varaNome"`
}

func NewSlotResponse(s schedule.Slot) SlotResponse {
	return SlotResponse{
		Data:           brtime.FormatDate(s.Date),
		DiaSemana:      brtime.WeekdayName(s.Date),
		HorarioInicio:  brtime.FormatTime(s.Start),
		HorarioFim:     brtime.FormatTime(s.End),
		DuracaoMinutos: s.DurationMinutes(),
		VaraID:         s.VenueID,
		VaraNome:       s.VenueName,
	}
}
