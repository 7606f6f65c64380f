package biometric

import (
	"context"
	"fmt"
	"time"

	"github.com/ksusheel25/hr-management-system/internal/domain/attendance"
	"github.com/ksusheel25/hr-management-system/internal/domain/biometric"
	"github.com/ksusheel25/hr-management-system/internal/domain/employee"
	"github.com/ksusheel25/hr-management-system/internal/pkg/database"
	"github.com/ksusheel25/hr-management-system/internal/repository/postgresql"
)

type BiometricServiceImpl struct {
	db *database.DB
	biometric.Repository
	eventRepo    attendance.EventRepository
	presenceRepo attendance.OfficePresenceRepository
	employeeRepo employee.Repository
}

func NewBiometricService(
	db *database.DB,
	logRepo biometric.Repository,
	eventRepo attendance.EventRepository,
	presenceRepo attendance.OfficePresenceRepository,
	employeeRepo employee.Repository,
) biometric.Service {
	return &BiometricServiceImpl{
		db:           db,
		Repository:   logRepo,
		eventRepo:    eventRepo,
		presenceRepo: presenceRepo,
		employeeRepo: employeeRepo,
	}
}

// ReceiveEvent implements biometric.Service. The raw log, the mapped
// attendance event and the office-presence bookkeeping are committed in one
// transaction so a device retry after a partial failure replays cleanly.
func (s *BiometricServiceImpl) ReceiveEvent(ctx context.Context, companyID string, req biometric.ReceiveEventRequest) (biometric.ReceiveEventResponse, error) {
	eventTime, err := req.Validate()
	if err != nil {
		return biometric.ReceiveEventResponse{}, err
	}

	exists, err := s.Repository.ExistsByDeviceLogID(ctx, companyID, req.DeviceLogID)
	if err != nil {
		return biometric.ReceiveEventResponse{}, fmt.Errorf("failed to check device log id: %w", err)
	}
	if exists {
		return biometric.ReceiveEventResponse{Accepted: true, Duplicate: true}, nil
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID)
	if err != nil {
		return biometric.ReceiveEventResponse{}, err
	}

	var eventID string
	err = postgresql.WithTransaction(ctx, s.db, func(ctx context.Context) error {
		log := &biometric.EventLog{
			CompanyID:   companyID,
			EmployeeID:  emp.ID,
			DeviceLogID: req.DeviceLogID,
			EventType:   req.EventType,
			Source:      string(attendance.SourceBiometric),
			Timestamp:   eventTime,
		}
		if err := s.Repository.Create(ctx, log); err != nil {
			return fmt.Errorf("failed to store biometric event log: %w", err)
		}

		event, err := s.eventRepo.Create(ctx, attendance.Event{
			CompanyID:   companyID,
			EmployeeID:  emp.ID,
			EventType:   attendance.EventType(req.EventType),
			Source:      attendance.SourceBiometric,
			EventTime:   eventTime.UTC(),
			DeviceLogID: companyID + ":" + req.DeviceLogID,
		})
		if err != nil {
			return fmt.Errorf("failed to create attendance event: %w", err)
		}
		eventID = event.ID

		if err := s.handleOfficePresence(ctx, companyID, emp.ID, attendance.EventType(req.EventType), eventTime); err != nil {
			return err
		}
		return s.Repository.MarkProcessed(ctx, log.ID)
	})
	if err != nil {
		return biometric.ReceiveEventResponse{}, err
	}

	return biometric.ReceiveEventResponse{Accepted: true, EventID: eventID}, nil
}

func (s *BiometricServiceImpl) handleOfficePresence(ctx context.Context, companyID, employeeID string, eventType attendance.EventType, eventTime time.Time) error {
	switch eventType {
	case attendance.EventOfficeEntry:
		date := eventTime.UTC().Truncate(24 * time.Hour)
		_, err := s.presenceRepo.Create(ctx, attendance.OfficePresenceSummary{
			CompanyID:       companyID,
			EmployeeID:      employeeID,
			BusinessDate:    date,
			OfficeEntryTime: eventTime.UTC(),
		})
		if err != nil {
			return fmt.Errorf("failed to open office presence: %w", err)
		}
	case attendance.EventOfficeExit:
		open, err := s.presenceRepo.FindLatestOpen(ctx, companyID, employeeID)
		if err != nil {
			return fmt.Errorf("failed to find open office presence: %w", err)
		}
		if open == nil {
			return attendance.ErrNoOpenOfficeVisit
		}
		exit := eventTime.UTC()
		open.OfficeExitTime = &exit
		minutes := int64(exit.Sub(open.OfficeEntryTime).Minutes())
		if minutes < 0 {
			minutes = 0
		}
		open.OfficeDurationMinutes = minutes
		if err := s.presenceRepo.Close(ctx, *open); err != nil {
			return fmt.Errorf("failed to close office presence: %w", err)
		}
	}
	return nil
}
