package service

import (
	"context"
	"log"

	"go-gestion-ws/internal/model"
	"go-gestion-ws/internal/state"
	"go-gestion-ws/internal/store"
	"go-gestion-ws/internal/ws"
	"go-gestion-ws/pkg/validator"
)

type SettingsService interface {
	Get(ctx context.Context) model.Settings
	Update(ctx context.Context, settings model.Settings) error
	// ResetDatabase clears the three domain collections and their persisted
	// snapshots.
	ResetDatabase(ctx context.Context)
}

type settingsService struct {
	store     *state.Store
	snapshots store.Store
	notifier  ws.Notifier
}

func NewSettingsService(st *state.Store, snapshots store.Store, notifier ws.Notifier) SettingsService {
	return &settingsService{store: st, snapshots: snapshots, notifier: notifier}
}

func (s *settingsService) Get(ctx context.Context) model.Settings {
	settings := model.DefaultSettings()
	if _, err := s.snapshots.Load(ctx, store.KeySettings, &settings); err != nil {
		log.Printf("settings: load failed: %v", err)
		return model.DefaultSettings()
	}
	return settings
}

func (s *settingsService) Update(ctx context.Context, settings model.Settings) error {
	if errs := validator.ValidateStruct(settings); len(errs) > 0 {
		return firstValidationError(errs)
	}
	if err := s.snapshots.Save(ctx, store.KeySettings, settings); err != nil {
		return err
	}
	s.notifier.Notify(ws.Notification{
		Title:       "Configuración guardada",
		Description: "Los cambios se han aplicado correctamente.",
	})
	return nil
}

func (s *settingsService) ResetDatabase(ctx context.Context) {
	s.store.Reset(ctx)
	s.notifier.Notify(ws.Notification{
		Title:       "Base de datos reiniciada",
		Description: "Se han eliminado todos los datos almacenados.",
	})
}
