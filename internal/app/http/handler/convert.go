package handler

import (
	"net/url"

	"seatservice/internal/app/dto"
	"seatservice/internal/domain/account"
	"seatservice/internal/domain/params"
	"seatservice/internal/domain/user"
)

func toUser(u user.User) dto.User {
	pills := u.Pills()
	out := dto.User{
		Ownerid:   u.Ownerid,
		Username:  u.Username,
		Name:      u.Name,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		IsStudent: u.IsStudent,
		Activated: u.Activated,
		Pills:     make([]dto.Pill, 0, len(pills)),
	}
	for _, p := range pills {
		out.Pills = append(out.Pills, dto.Pill{Label: p.Label, Highlight: p.Highlight})
	}
	return out
}

// toUserPage builds next/previous links by moving the page of the request's
// own params, so every other filter carries over unchanged.
func toUserPage(reqURL *url.URL, p params.FilterParams, page user.Page) dto.UserPage {
	out := dto.UserPage{
		Results:    make([]dto.User, 0, len(page.Results)),
		TotalCount: page.TotalCount,
		TotalPages: page.TotalPages,
	}
	for _, u := range page.Results {
		out.Results = append(out.Results, toUser(u))
	}

	if p.Page < page.TotalPages {
		out.Next = pageLink(reqURL, p.Page+1)
	}
	if p.Page > 1 {
		out.Previous = pageLink(reqURL, p.Page-1)
	}
	return out
}

func pageLink(reqURL *url.URL, page int) *string {
	loc := params.NewURLLocation(reqURL)
	store := params.NewStore(loc)
	store.Update(params.Patch{Page: &page})
	link := loc.RequestURI()
	return &link
}

func toAccount(u account.Usage) dto.Account {
	return dto.Account{
		ActivatedUserCount: u.ActivatedUserCount,
		Plan: dto.Plan{
			Value: u.Plan.Value,
			Tier:  u.Plan.Tier.String(),
		},
		PlanAutoActivate: u.PlanAutoActivate,
	}
}
