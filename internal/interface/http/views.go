package handlers

import (
	"github.com/oksasatya/hocus-focus/internal/application"
	"github.com/oksasatya/hocus-focus/internal/domain/entity"
)

// userView is the public shape of a user. The password hash never leaves
// the server.
type userView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	Email       string `json:"email"`
	Description string `json:"description,omitempty"`
	Picture     string `json:"picture,omitempty"`
	Role        string `json:"role,omitempty"`
	CreatedAt   int64  `json:"createdAt"`
}

func toUserView(u *entity.User) *userView {
	if u == nil {
		return nil
	}
	return &userView{
		ID: u.ID, Name: u.Name, Surname: u.Surname, Email: u.Email,
		Description: u.Description, Picture: u.Picture, Role: u.Role, CreatedAt: u.CreatedAt,
	}
}

func toUserViews(users []entity.User) []userView {
	out := make([]userView, 0, len(users))
	for i := range users {
		out = append(out, *toUserView(&users[i]))
	}
	return out
}

func nonNil(list []entity.Activity) []entity.Activity {
	if list == nil {
		return []entity.Activity{}
	}
	return list
}

type categoryGroupView struct {
	Category   string            `json:"category"`
	Activities []entity.Activity `json:"activities"`
}

func toCategoryViews(groups []application.CategoryGroup) []categoryGroupView {
	out := make([]categoryGroupView, 0, len(groups))
	for _, g := range groups {
		out = append(out, categoryGroupView{Category: g.Category, Activities: nonNil(g.Activities)})
	}
	return out
}
