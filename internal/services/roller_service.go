package services

import (
	"context"
	"fmt"

	"github.com/hirendodiya515/roller-management-system/internal/models"
	"github.com/hirendodiya515/roller-management-system/internal/repositories"
	"github.com/hirendodiya515/roller-management-system/internal/ws"
)

type RollerService struct {
	Rollers *repositories.RollerRepository
	Hub     *ws.Hub
}

func NewRollerService(rollers *repositories.RollerRepository, hub *ws.Hub) *RollerService {
	return &RollerService{Rollers: rollers, Hub: hub}
}

func (s *RollerService) Create(ctx context.Context, req *models.CreateRollerRequest, userID int) (*models.Roller, error) {
	if req.RollerNumber == "" {
		return nil, fmt.Errorf("roller_number is required")
	}
	if !models.ValidPosition(req.Position) {
		return nil, fmt.Errorf("invalid position %q", req.Position)
	}
	if !models.ValidLine(req.Line) {
		return nil, fmt.Errorf("invalid line %q", req.Line)
	}

	roller := &models.Roller{
		RollerNumber:    req.RollerNumber,
		Make:            req.Make,
		Design:          req.Design,
		Position:        req.Position,
		Line:            req.Line,
		Status:          models.RollerStatusPending,
		CreatedByUserID: userID,
	}
	if err := s.Rollers.Create(ctx, roller); err != nil {
		return nil, err
	}
	s.broadcast("roller_created", roller.ID)
	return roller, nil
}

func (s *RollerService) Update(ctx context.Context, id int, req *models.UpdateRollerRequest) (*models.Roller, error) {
	if !models.ValidPosition(req.Position) {
		return nil, fmt.Errorf("invalid position %q", req.Position)
	}
	if !models.ValidLine(req.Line) {
		return nil, fmt.Errorf("invalid line %q", req.Line)
	}
	if err := s.Rollers.Update(ctx, id, req); err != nil {
		return nil, err
	}
	s.broadcast("roller_updated", id)
	return s.Rollers.Get(ctx, id)
}

// Approve moves a pending roller to Approved.
func (s *RollerService) Approve(ctx context.Context, id int) error {
	if err := s.Rollers.UpdateStatus(ctx, id, models.RollerStatusApproved); err != nil {
		return err
	}
	s.broadcast("roller_updated", id)
	return nil
}

func (s *RollerService) Get(ctx context.Context, id int) (*models.Roller, error) {
	return s.Rollers.Get(ctx, id)
}

func (s *RollerService) List(ctx context.Context) ([]*models.Roller, error) {
	return s.Rollers.List(ctx)
}

func (s *RollerService) broadcast(event string, rollerID int) {
	if s.Hub != nil {
		s.Hub.Broadcast(ws.Event{Type: event, RollerID: rollerID})
	}
}
