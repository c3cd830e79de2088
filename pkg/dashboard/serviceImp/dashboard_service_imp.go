package serviceImp

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"kisan/entities"
	chatRepo "kisan/pkg/chat/repository"
	"kisan/pkg/dashboard/service"
	farmRepo "kisan/pkg/farm/repository"
	"kisan/pkg/logger"
	taskRepo "kisan/pkg/task/repository"
	userRepo "kisan/pkg/user/repository"
	"kisan/pkg/weather"
)

type dashboardSvc struct {
	users    userRepo.UserRepository
	farms    farmRepo.FarmRepository
	tasks    taskRepo.TaskRepository
	messages chatRepo.MessageRepository
	weather  weather.Provider
}

func NewDashboardService(users userRepo.UserRepository, farms farmRepo.FarmRepository, tasks taskRepo.TaskRepository,
	messages chatRepo.MessageRepository, wp weather.Provider) service.DashboardService {
	return &dashboardSvc{users: users, farms: farms, tasks: tasks, messages: messages, weather: wp}
}

// Summary gathers every panel concurrently. The weather panel is optional:
// its failure leaves Weather nil instead of failing the page.
func (s *dashboardSvc) Summary(ctx context.Context, uid string) (*service.Summary, error) {
	u, err := s.users.FindByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	out := &service.Summary{District: u.Location.District}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Farms.Total, err = s.farms.Count(gctx, uid, "")
		return err
	})
	g.Go(func() (err error) {
		out.Farms.Active, err = s.farms.Count(gctx, uid, entities.FarmActive)
		return err
	})
	g.Go(func() (err error) {
		out.PendingTasks, err = s.tasks.CountByStatus(gctx, uid, entities.TaskPending)
		return err
	})
	g.Go(func() (err error) {
		out.UnreadMessages, err = s.messages.Unread(gctx, uid)
		return err
	})
	if out.District != "" && s.weather != nil {
		g.Go(func() error {
			snap, err := s.weather.Lookup(gctx, out.District)
			if err != nil {
				logger.L().Info("dashboard weather unavailable", zap.String("district", out.District), zap.Error(err))
				return nil
			}
			out.Weather = snap
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
