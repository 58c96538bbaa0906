package export

import (
	"context"
	"fmt"
	"sync"
	"time"

	common_models "formdash/internal/common/models"
	"formdash/internal/features/audit"
	"formdash/internal/features/dashboard"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type ExportService interface {
	ExportWorkbook(ctx context.Context, dashboardID, userID string) ([]byte, string, error)
	ExportSnapshot(ctx context.Context, dashboardID, userID string) error

	CreateSchedule(ctx context.Context, schedule *Schedule, userID string) error
	ListSchedules(ctx context.Context, userID string) ([]Schedule, error)
	DeleteSchedule(ctx context.Context, id, userID string) error

	// InitializeScheduler loads enabled schedules and starts the cron
	// runner; StopScheduler drains it. Both hang off the app lifecycle.
	InitializeScheduler(ctx context.Context) error
	StopScheduler() error
}

type ExportServiceImpl struct {
	ScheduleRepo     ScheduleRepository
	DashboardService dashboard.DashboardService
	Snapshots        *SnapshotStore
	AuditService     audit.AuditService
	Logger           *zap.Logger

	scheduler  *cron.Cron
	jobEntries map[string]cron.EntryID
	mu         sync.Mutex
}

func NewExportService(
	scheduleRepo ScheduleRepository,
	dashboardService dashboard.DashboardService,
	snapshots *SnapshotStore,
	auditService audit.AuditService,
	logger *zap.Logger,
) ExportService {
	return &ExportServiceImpl{
		ScheduleRepo:     scheduleRepo,
		DashboardService: dashboardService,
		Snapshots:        snapshots,
		AuditService:     auditService,
		Logger:           logger,
		jobEntries:       make(map[string]cron.EntryID),
	}
}

func (s *ExportServiceImpl) ExportWorkbook(ctx context.Context, dashboardID, userID string) ([]byte, string, error) {
	d, err := s.DashboardService.GetDashboard(ctx, dashboardID, userID)
	if err != nil {
		return nil, "", err
	}

	data, filename, err := BuildWorkbook(d)
	if err == nil {
		_ = s.AuditService.LogChange(ctx, common_models.AuditActionExport, "dashboards", dashboardID, map[string]common_models.Change{
			"export": {New: filename},
		})
	}
	return data, filename, err
}

func (s *ExportServiceImpl) ExportSnapshot(ctx context.Context, dashboardID, userID string) error {
	d, err := s.DashboardService.GetDashboard(ctx, dashboardID, userID)
	if err != nil {
		return err
	}

	if err := s.Snapshots.Save(ctx, d); err != nil {
		return err
	}
	_ = s.AuditService.LogChange(ctx, common_models.AuditActionExport, "dashboards", dashboardID, map[string]common_models.Change{
		"snapshot": {New: d.Version},
	})
	return nil
}

func (s *ExportServiceImpl) CreateSchedule(ctx context.Context, schedule *Schedule, userID string) error {
	if _, err := s.DashboardService.GetDashboard(ctx, schedule.DashboardID, userID); err != nil {
		return err
	}

	parsed, err := cron.ParseStandard(schedule.Spec)
	if err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}
	if schedule.Format != FormatWorkbook && schedule.Format != FormatSnapshot {
		return fmt.Errorf("unknown export format %q", schedule.Format)
	}
	if schedule.Format == FormatSnapshot && !s.Snapshots.Enabled() {
		return ErrSnapshotsDisabled
	}

	schedule.ID = "export-" + uuid.NewString()
	schedule.UserID = userID
	schedule.Enabled = true
	next := parsed.Next(time.Now())
	schedule.NextRun = &next

	if err := s.ScheduleRepo.Create(ctx, schedule); err != nil {
		return err
	}
	s.registerJob(schedule)
	return nil
}

func (s *ExportServiceImpl) ListSchedules(ctx context.Context, userID string) ([]Schedule, error) {
	return s.ScheduleRepo.FindByUser(ctx, userID)
}

func (s *ExportServiceImpl) DeleteSchedule(ctx context.Context, id, userID string) error {
	existing, err := s.ScheduleRepo.Get(ctx, id)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return ErrScheduleNotFound
	}

	if err := s.ScheduleRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.unregisterJob(id)
	return nil
}

func (s *ExportServiceImpl) InitializeScheduler(ctx context.Context) error {
	s.mu.Lock()
	s.scheduler = cron.New()
	s.mu.Unlock()

	schedules, err := s.ScheduleRepo.FindEnabled(ctx)
	if err != nil {
		return fmt.Errorf("failed to load export schedules: %w", err)
	}
	for i := range schedules {
		s.registerJob(&schedules[i])
	}

	s.scheduler.Start()
	s.Logger.Info("export scheduler started", zap.Int("schedules", len(schedules)))
	return nil
}

func (s *ExportServiceImpl) StopScheduler() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scheduler != nil {
		// Stop returns once running jobs have finished.
		<-s.scheduler.Stop().Done()
	}
	return nil
}

func (s *ExportServiceImpl) registerJob(schedule *Schedule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scheduler == nil {
		return
	}

	id := schedule.ID
	entryID, err := s.scheduler.AddFunc(schedule.Spec, func() {
		s.runScheduled(id)
	})
	if err != nil {
		s.Logger.Error("failed to register export schedule",
			zap.String("schedule_id", id), zap.Error(err))
		return
	}
	s.jobEntries[id] = entryID
}

func (s *ExportServiceImpl) unregisterJob(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scheduler == nil {
		return
	}
	if entryID, ok := s.jobEntries[id]; ok {
		s.scheduler.Remove(entryID)
		delete(s.jobEntries, id)
	}
}

func (s *ExportServiceImpl) runScheduled(id string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	schedule, err := s.ScheduleRepo.Get(ctx, id)
	if err != nil {
		s.Logger.Warn("scheduled export vanished", zap.String("schedule_id", id), zap.Error(err))
		s.unregisterJob(id)
		return
	}

	switch schedule.Format {
	case FormatSnapshot:
		err = s.ExportSnapshot(ctx, schedule.DashboardID, schedule.UserID)
	default:
		// Workbook runs verify the dashboard still renders to XLSX; the
		// bytes are not kept anywhere server-side.
		_, _, err = s.ExportWorkbook(ctx, schedule.DashboardID, schedule.UserID)
	}
	if err != nil {
		s.Logger.Error("scheduled export failed",
			zap.String("schedule_id", id),
			zap.String("dashboard_id", schedule.DashboardID),
			zap.Error(err))
		return
	}

	now := time.Now()
	schedule.LastRun = &now
	if parsed, err := cron.ParseStandard(schedule.Spec); err == nil {
		next := parsed.Next(now)
		schedule.NextRun = &next
	}
	if err := s.ScheduleRepo.Update(ctx, schedule); err != nil {
		s.Logger.Warn("failed to record export run", zap.String("schedule_id", id), zap.Error(err))
	}
}
