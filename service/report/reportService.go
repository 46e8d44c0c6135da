package reportsvc

import (
	"context"
	"time"

	"github.com/Macsarunrat/pink-rental/model"
	reportrepo "github.com/Macsarunrat/pink-rental/repository/report"
	dresssvc "github.com/Macsarunrat/pink-rental/service/dress"
)

type UpcomingRow = reportrepo.UpcomingRow

type Dashboard struct {
	Upcoming      []UpcomingRow `json:"upcoming"`
	WeeklyIncome  float64       `json:"weekly_income"`
	MonthlyIncome float64       `json:"monthly_income"`
	Dresses       []model.Dress `json:"dresses"`
}

type Service interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
}

type service struct {
	r       reportrepo.Repo
	dresses dresssvc.Service
	now     func() time.Time
}

// New builds the report service; now is injectable for tests.
func New(r reportrepo.Repo, dresses dresssvc.Service, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{r: r, dresses: dresses, now: now}
}

// WeekStart returns the Monday of the week containing t, at midnight UTC.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func (s *service) Dashboard(ctx context.Context) (*Dashboard, error) {
	today := s.now()

	upcoming, err := s.r.ListUpcoming(ctx)
	if err != nil {
		return nil, err
	}

	// Weekly income counts everything starting from this week's Monday with
	// no upper bound; monthly matches by month number only.
	weekly, err := s.r.SumFrom(ctx, WeekStart(today))
	if err != nil {
		return nil, err
	}
	monthly, err := s.r.SumMonth(ctx, int(today.Month()))
	if err != nil {
		return nil, err
	}

	dresses, err := s.dresses.List(ctx)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Upcoming:      upcoming,
		WeeklyIncome:  weekly,
		MonthlyIncome: monthly,
		Dresses:       dresses,
	}, nil
}
