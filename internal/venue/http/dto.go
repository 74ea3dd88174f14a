package http

import (
	"time"

	"github.com/nekogravitycat/hearing-scheduler/internal/pkg/brtime"
	"github.com/nekogravitycat/hearing-scheduler/internal/pkg/request"
	"github.com/nekogravitycat/hearing-scheduler/internal/venue"
)

type VenueResponse struct {
	ID                       string          `json:"id"`
	Nome                     string          `json:"nome"`
	Comarca                  string          `json:"comarca"`
	Endereco                 string          `json:"endereco"`
	Telefone                 string          `json:"telefone"`
	Email                    string          `json:"email"`
	Observacoes              string          `json:"observacoes"`
	Janelas                  []brtime.Janela `json:"janelas"`
	IgnorarFinsDeSemana      bool            `json:"ignorarFinsDeSemana"`
	BufferObrigatorioMinutos int             `json:"bufferObrigatorioMinutos"`
	CriadoEm                 time.Time       `json:"criadoEm"`
	AtualizadoEm             time.Time       `json:"atualizadoEm"`
}

func NewVenueResponse(v *venue.Venue) VenueResponse {
	return VenueResponse{
		ID:                       v.ID,
		Nome:                     v.Name,
		Comarca:                  v.District,
		Endereco:                 v.Address,
		Telefone:                 v.Phone,
		Email:                    v.Email,
		Observacoes:              v.Notes,
		Janelas:                  brtime.NewJanelas(v.Windows),
		IgnorarFinsDeSemana:      v.SkipWeekends,
		BufferObrigatorioMinutos: v.MandatoryBufferMinutes,
		CriadoEm:                 v.CreatedAt,
		AtualizadoEm:             v.UpdatedAt,
	}
}

type ListVenuesRequest struct {
	Q       string `form:"q"`
	Comarca string `form:"comarca"`
	request.PageRequest
}

func (r *ListVenuesRequest) ToFilter() venue.Filter {
	f := venue.Filter{Keyword: r.Q, District: r.Comarca}
	f.Page, f.PageSize = request.ClampPage(r.Page, r.PageSize)
	return f
}

type CreateVenueRequest struct {
	Nome        string          `json:"nome" binding:"required,max=200"`
	Comarca     string          `json:"comarca" binding:"max=200"`
	Endereco    string          `json:"endereco"`
	Telefone    string          `json:"telefone" binding:"max=30"`
	Email       string          `json:"email" binding:"omitempty,email"`
	Observacoes string          `json:"observacoes"`
	Janelas     []brtime.Janela `json:"janelas" binding:"omitempty,dive"`
	// IgnorarFinsDeSemana defaults to true when omitted.
	IgnorarFinsDeSemana      *bool `json:"ignorarFinsDeSemana"`
	BufferObrigatorioMinutos int   `json:"bufferObrigatorioMinutos" binding:"min=0,max=240"`
}

// ToServiceRequest converts the body into a service request.
func (r *CreateVenueRequest) ToServiceRequest() (venue.CreateRequest, error) {
	windows, err := brtime.ParseJanelas(r.Janelas)
	if err != nil {
		return venue.CreateRequest{}, err
	}
	skip := true
	if r.IgnorarFinsDeSemana != nil {
		skip = *r.IgnorarFinsDeSemana
	}
	return venue.CreateRequest{
		Name:                   r.Nome,
		District:               r.Comarca,
		Address:                r.Endereco,
		Phone:                  r.Telefone,
		Email:                  r.Email,
		Notes:                  r.Observacoes,
		Windows:                windows,
		SkipWeekends:           skip,
		MandatoryBufferMinutes: r.BufferObrigatorioMinutos,
	}, nil
}

type UpdateVenueRequest struct {
	Nome                     *string          `json:"nome" binding:"omitempty,max=200"`
	Comarca                  *string          `json:"comarca" binding:"omitempty,max=200"`
	Endereco                 *string          `json:"endereco"`
	Telefone                 *string          `json:"telefone" binding:"omitempty,max=30"`
	Email                    *string          `json:"email" binding:"omitempty,email"`
	Observacoes              *string          `json:"observacoes"`
	Janelas                  *[]brtime.Janela `json:"janelas"`
	IgnorarFinsDeSemana      *bool            `json:"ignorarFinsDeSemana"`
	BufferObrigatorioMinutos *int             `json:"bufferObrigatorioMinutos" binding:"omitempty,min=0,max=240"`
}

// ToServiceRequest converts the body into a service request.
func (r *UpdateVenueRequest) ToServiceRequest() (venue.UpdateRequest, error) {
	req := venue.UpdateRequest{
		Name:                   r.Nome,
		District:               r.Comarca,
		Address:                r.Endereco,
		Phone:                  r.Telefone,
		Email:                  r.Email,
		Notes:                  r.Observacoes,
		SkipWeekends:           r.IgnorarFinsDeSemana,
		MandatoryBufferMinutes: r.BufferObrigatorioMinutos,
	}
	if r.Janelas != nil {
		windows, err := brtime.ParseJanelas(*r.Janelas)
		if err != nil {
			return venue.UpdateRequest{}, err
		}
		req.Windows = &windows
	}
	return req, nil
}
