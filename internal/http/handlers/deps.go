package handlers

import (
	"vailure/internal/catalog"
	"vailure/internal/session"
)

type Deps struct {
	CatalogHandler *CatalogHandler
	SearchHandler  *SearchHandler
	ProductHandler *ProductHandler
	CartHandler    *CartHandler
	ChatHandler    *ChatHandler
}

func NewDeps(store *catalog.Store, reg *session.Registry) *Deps {
	return &Deps{
		CatalogHandler: &CatalogHandler{Store: store, Sessions: reg},
		SearchHandler:  &SearchHandler{Store: store, Sessions: reg},
		ProductHandler: &ProductHandler{Store: store, Sessions: reg},
		CartHandler:    &CartHandler{Store: store, Sessions: reg},
		ChatHandler:    &ChatHandler{Sessions: reg},
	}
}
