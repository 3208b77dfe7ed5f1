package service

import (
	"context"
	"errors"
	"fmt"

	"go-gestion-ws/internal/model"
	"go-gestion-ws/internal/state"
	"go-gestion-ws/internal/ws"
	"go-gestion-ws/pkg/validator"
)

type ClientService interface {
	ListClients() []model.Client
	CreateClient(ctx context.Context, in model.ClientInput) (model.Client, error)
	UpdateClient(ctx context.Context, c model.Client) (model.Client, bool, error)
	DeleteClient(ctx context.Context, id string) bool
}

type clientService struct {
	store    *state.Store
	notifier ws.Notifier
}

func NewClientService(store *state.Store, notifier ws.Notifier) ClientService {
	return &clientService{store: store, notifier: notifier}
}

func (s *clientService) ListClients() []model.Client {
	return s.store.Clients()
}

func (s *clientService) CreateClient(ctx context.Context, in model.ClientInput) (model.Client, error) {
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return model.Client{}, firstValidationError(errs)
	}

	c := s.store.AddClient(ctx, in)
	s.notifier.Notify(ws.Notification{
		Title:       "Cliente agregado",
		Description: fmt.Sprintf("Se ha agregado %s a la base de datos.", c.Name),
	})
	return c, nil
}

func (s *clientService) UpdateClient(ctx context.Context, c model.Client) (model.Client, bool, error) {
	if c.ID == "" {
		return model.Client{}, false, errors.New("client id is required")
	}
	if errs := validator.ValidateStruct(c); len(errs) > 0 {
		return model.Client{}, false, firstValidationError(errs)
	}

	updated, ok := s.store.UpdateClient(ctx, c)
	if !ok {
		return model.Client{}, false, nil
	}
	s.notifier.Notify(ws.Notification{
		Title:       "Cliente actualizado",
		Description: fmt.Sprintf("Se ha actualizado la información de %s.", updated.Name),
	})
	return updated, true, nil
}

func (s *clientService) DeleteClient(ctx context.Context, id string) bool {
	removed, ok := s.store.DeleteClient(ctx, id)
	if !ok {
		return false
	}
	s.notifier.Notify(ws.Notification{
		Title:       "Cliente eliminado",
		Description: fmt.Sprintf("Se ha eliminado a %s de la base de datos.", removed.Name),
	})
	return true
}
