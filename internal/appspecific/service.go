// Package appspecific serves application-specific machine ids for the host.
package appspecific

import (
	"context"
	"fmt"

	"winsbygroup.com/appmachineid/internal/application"
	"winsbygroup.com/appmachineid/internal/machineid"
)

// TextSource supplies the raw machine-id(5) text, e.g. *source.Reader.
type TextSource interface {
	Read(ctx context.Context) (string, error)
}

type Result struct {
	AppName   string `json:"AppName,omitempty"`
	AppID     string `json:"AppID"`
	MachineID string `json:"MachineID"`
}

type Service struct {
	source TextSource
	apps   *application.Service
}

func NewService(src TextSource, apps *application.Service) *Service {
	return &Service{
		source: src,
		apps:   apps,
	}
}

// Get derives the id for appID from a fresh read of the machine id.
// Errors from the source and from machineid are returned unchanged.
func (s *Service) Get(ctx context.Context, appID []byte) (*Result, error) {
	text, err := s.source.Read(ctx)
	if err != nil {
		return nil, err
	}

	id, err := machineid.DeriveAppSpecific(text, appID)
	if err != nil {
		return nil, err
	}

	var app [machineid.Size]byte
	copy(app[:], appID)

	return &Result{
		AppID:     machineid.FormatUUID(app),
		MachineID: id,
	}, nil
}

// GetString is Get for an application id in textual uuid form.
func (s *Service) GetString(ctx context.Context, appID string) (*Result, error) {
	id, err := machineid.ParseAppID(appID)
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id[:])
}

// GetByName resolves a registered application and derives its id.
// Without a registry every name is unknown.
func (s *Service) GetByName(ctx context.Context, name string) (*Result, error) {
	if s.apps == nil {
		return nil, fmt.Errorf("%w (%s): no application registry", application.ErrNotFound, name)
	}

	app, err := s.apps.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}

	res, err := s.GetString(ctx, app.AppUUID)
	if err != nil {
		return nil, err
	}
	res.AppName = app.AppName
	return res, nil
}
