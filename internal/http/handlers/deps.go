package handlers

import (
	"stitchpos/internal/identity"
	"stitchpos/internal/metrics"
	"stitchpos/internal/pos"
)

type Deps struct {
	AuthHandler     *AuthHandler
	POSHandler      *POSHandler
	OrderHandler    *OrderHandler
	CustomerHandler *CustomerHandler
	AdminHandler    *AdminHandler
	ReportHandler   *ReportHandler
}

func NewDeps(term *pos.Terminal, auth *identity.Provider, met *metrics.Registry) *Deps {
	return &Deps{
		AuthHandler:     &AuthHandler{Auth: auth, Met: met},
		POSHandler:      &POSHandler{Term: term},
		OrderHandler:    &OrderHandler{Term: term},
		CustomerHandler: &CustomerHandler{Term: term},
		AdminHandler:    &AdminHandler{Term: term},
		ReportHandler:   &ReportHandler{Term: term},
	}
}
