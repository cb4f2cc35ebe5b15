package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/service"
)

func (s *Server) registerCookRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listCooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/cooks",
		Summary:     "List cooks",
		Description: "Returns every cook with age and class",
		Tags:        []string{"Cooks"},
	}, s.handleListCooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCook",
		Method:      http.MethodGet,
		Path:        "/api/v1/cooks/{id}",
		Summary:     "Get cook",
		Description: "Returns a cook with qualified cuisines and episode history",
		Tags:        []string{"Cooks"},
	}, s.handleGetCook)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createCook",
		Method:        http.MethodPost,
		Path:          "/api/v1/cooks",
		Summary:       "Create cook",
		Description:   "Creates a cook qualified for one or more cuisines",
		Tags:          []string{"Cooks"},
		DefaultStatus: http.StatusCreated,
		Security:      []map[string][]string{{"adminKey": {}}},
	}, s.handleCreateCook)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateCook",
		Method:      http.MethodPatch,
		Path:        "/api/v1/cooks/{id}",
		Summary:     "Update cook",
		Description: "Changes the given fields of a cook. cuisine_ids replaces the qualified cuisines for future episodes",
		Tags:        []string{"Cooks"},
		Security:    []map[string][]string{{"adminKey": {}}},
	}, s.handleUpdateCook)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteCook",
		Method:      http.MethodDelete,
		Path:        "/api/v1/cooks/{id}",
		Summary:     "Delete cook",
		Description: "Deletes a cook and its qualifications. Fails once the cook has appeared in an episode",
		Tags:        []string{"Cooks"},
		Security:    []map[string][]string{{"adminKey": {}}},
	}, s.handleDeleteCook)
}

// === DTOs ===

// CookSummaryResponse is a cook in list responses.
type CookSummaryResponse struct {
	ID    int64  `json:"id" doc:"Cook ID"`
	Name  string `json:"name" doc:"Full name"`
	Age   int    `json:"age" doc:"Age in whole years"`
	Class string `json:"class" doc:"Rank, from C cook to chef"`
}

// CookResponse is the full view of a cook.
type CookResponse struct {
	ID                int64             `json:"id" doc:"Cook ID"`
	FirstName         string            `json:"first_name" doc:"First name"`
	LastName          string            `json:"last_name" doc:"Last name"`
	Name              string            `json:"name" doc:"Full name"`
	BirthDate         string            `json:"birth_date" doc:"Birth date (YYYY-MM-DD)"`
	Age               int               `json:"age" doc:"Age in whole years"`
	Phone             string            `json:"phone,omitempty" doc:"Phone number"`
	YearsOfExperience int               `json:"years_of_experience" doc:"Years of professional experience"`
	Class             string            `json:"class" doc:"Rank, from C cook to chef"`
	Cuisines          []CuisineResponse `json:"cuisines" doc:"Cuisines the cook is qualified for"`
	CookAppearances   int               `json:"cook_appearances" doc:"Episodes cooked in"`
	JudgeAppearances  int               `json:"judge_appearances" doc:"Episodes judged"`
	Wins              int               `json:"wins" doc:"Episodes won"`
}

type ListCooksOutput struct {
	Body struct {
		Cooks []CookSummaryResponse `json:"cooks" doc:"Cooks ordered by ID"`
	}
}

type CookOutput struct {
	Body CookResponse
}

type CookIDInput struct {
	ID int64 `path:"id" minimum:"1" doc:"Cook ID"`
}

type CreateCookBody struct {
	FirstName         string  `json:"first_name" minLength:"1" maxLength:"100" doc:"First name"`
	LastName          string  `json:"last_name,omitempty" maxLength:"100" doc:"Last name"`
	BirthDate         string  `json:"birth_date" doc:"Birth date (YYYY-MM-DD)" example:"1985-04-12"`
	Phone             string  `json:"phone,omitempty" maxLength:"32" doc:"Phone number"`
	YearsOfExperience int     `json:"years_of_experience,omitempty" minimum:"0" doc:"Years of professional experience"`
	Class             string  `json:"class" doc:"Rank: C cook, B cook, A cook, sous chef or chef"`
	CuisineIDs        []int64 `json:"cuisine_ids" minItems:"1" doc:"Cuisines the cook is qualified for"`
}

type CreateCookInput struct {
	AdminKey string `header:"X-Admin-Key" doc:"Admin key"`
	Body     CreateCookBody
}

type UpdateCookBody struct {
	FirstName         *string  `json:"first_name,omitempty" minLength:"1" maxLength:"100" doc:"First name"`
	LastName          *string  `json:"last_name,omitempty" maxLength:"100" doc:"Last name"`
	BirthDate         *string  `json:"birth_date,omitempty" doc:"Birth date (YYYY-MM-DD)" example:"1985-04-12"`
	Phone             *string  `json:"phone,omitempty" maxLength:"32" doc:"Phone number"`
	YearsOfExperience *int     `json:"years_of_experience,omitempty" minimum:"0" doc:"Years of professional experience"`
	Class             *string  `json:"class,omitempty" doc:"Rank: C cook, B cook, A cook, sous chef or chef"`
	CuisineIDs        *[]int64 `json:"cuisine_ids,omitempty" doc:"Replaces the qualified cuisines"`
}

type UpdateCookInput struct {
	AdminKey string `header:"X-Admin-Key" doc:"Admin key"`
	ID       int64  `path:"id" minimum:"1" doc:"Cook ID"`
	Body     UpdateCookBody
}

type DeleteCookInput struct {
	AdminKey string `header:"X-Admin-Key" doc:"Admin key"`
	ID       int64  `path:"id" minimum:"1" doc:"Cook ID"`
}

// === Handlers ===

func (s *Server) handleListCooks(ctx context.Context, _ *struct{}) (*ListCooksOutput, error) {
	cooks, err := s.services.Catalog.ListCooks(ctx)
	if err != nil {
		return nil, err
	}

	out := &ListCooksOutput{}
	out.Body.Cooks = make([]CookSummaryResponse, len(cooks))
	for i, c := range cooks {
		out.Body.Cooks[i] = CookSummaryResponse{
			ID:    c.ID,
			Name:  c.Name,
			Age:   c.Age,
			Class: string(c.Class),
		}
	}
	return out, nil
}

func (s *Server) handleGetCook(ctx context.Context, input *CookIDInput) (*CookOutput, error) {
	detail, err := s.services.Catalog.GetCook(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &CookOutput{Body: mapCookDetail(detail)}, nil
}

func (s *Server) handleCreateCook(ctx context.Context, input *CreateCookInput) (*CookOutput, error) {
	if err := s.requireAdmin(input.AdminKey); err != nil {
		return nil, err
	}

	cook, err := s.services.Catalog.CreateCook(ctx, service.CreateCookRequest{
		FirstName:         input.Body.FirstName,
		LastName:          input.Body.LastName,
		BirthDate:         input.Body.BirthDate,
		Phone:             input.Body.Phone,
		YearsOfExperience: input.Body.YearsOfExperience,
		Class:             input.Body.Class,
		CuisineIDs:        input.Body.CuisineIDs,
	})
	if err != nil {
		return nil, err
	}

	// Re-read for cuisine names and age.
	detail, err := s.services.Catalog.GetCook(ctx, cook.ID)
	if err != nil {
		return nil, err
	}
	return &CookOutput{Body: mapCookDetail(detail)}, nil
}

func (s *Server) handleUpdateCook(ctx context.Context, input *UpdateCookInput) (*CookOutput, error) {
	if err := s.requireAdmin(input.AdminKey); err != nil {
		return nil, err
	}

	if _, err := s.services.Catalog.UpdateCook(ctx, input.ID, service.UpdateCookRequest(input.Body)); err != nil {
		return nil, err
	}

	detail, err := s.services.Catalog.GetCook(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &CookOutput{Body: mapCookDetail(detail)}, nil
}

func (s *Server) handleDeleteCook(ctx context.Context, input *DeleteCookInput) (*MessageOutput, error) {
	if err := s.requireAdmin(input.AdminKey); err != nil {
		return nil, err
	}

	if err := s.services.Catalog.DeleteCook(ctx, input.ID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Cook deleted"}}, nil
}

func mapCookDetail(d *service.CookDetail) CookResponse {
	resp := CookResponse{
		ID:                d.ID,
		FirstName:         d.FirstName,
		LastName:          d.LastName,
		Name:              d.Name,
		BirthDate:         d.BirthDate.Format(service.BirthDateLayout),
		Age:               d.Age,
		Phone:             d.Phone,
		YearsOfExperience: d.YearsOfExperience,
		Class:             string(d.Class),
		Cuisines:          make([]CuisineResponse, len(d.Cuisines)),
		CookAppearances:   d.CookAppearances,
		JudgeAppearances:  d.JudgeAppearances,
		Wins:              d.Wins,
	}
	for i := range d.Cuisines {
		resp.Cuisines[i] = mapCuisineResponse(&d.Cuisines[i])
	}
	return resp
}
