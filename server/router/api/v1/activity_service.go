package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// RecordActivityRequest is the wire request for logging one user action.
type RecordActivityRequest struct {
	ActivityType string `json:"activityType"`
	Metadata     string `json:"metadata,omitempty"`
}

// ActiveDaysResponse lists the day-of-month numbers with activity.
type ActiveDaysResponse struct {
	Days []int `json:"days"`
}

// ActivityStatsResponse is the aggregate view of a user's activity.
type ActivityStatsResponse struct {
	TotalByType map[string]int64 `json:"totalByType"`
	StreakDays  int64            `json:"streakDays"`
}

// RecordActivity handles POST /api/v1/users/:user/activity.
func (s *APIV1Service) RecordActivity(c echo.Context) error {
	userID, err := userIDParam(c)
	if err != nil {
		return err
	}

	req := &RecordActivityRequest{}
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if req.ActivityType == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "activityType is required")
	}

	if err := s.ActivityService.Record(c.Request().Context(), userID, req.ActivityType, req.Metadata); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to record activity")
	}
	return c.NoContent(http.StatusNoContent)
}

// ActiveDays handles GET /api/v1/users/:user/activity/days?year=&month=.
func (s *APIV1Service) ActiveDays(c echo.Context) error {
	userID, err := userIDParam(c)
	if err != nil {
		return err
	}

	year, err := strconv.Atoi(c.QueryParam("year"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "year is required")
	}
	month, err := strconv.Atoi(c.QueryParam("month"))
	if err != nil || month < 1 || month > 12 {
		return echo.NewHTTPError(http.StatusBadRequest, "month must be 1-12")
	}

	days := s.ActivityService.ActiveDaysInMonth(c.Request().Context(), userID, year, time.Month(month))
	return c.JSON(http.StatusOK, &ActiveDaysResponse{Days: days})
}

// ActivityStats handles GET /api/v1/users/:user/activity/stats.
func (s *APIV1Service) ActivityStats(c echo.Context) error {
	userID, err := userIDParam(c)
	if err != nil {
		return err
	}

	stats := s.ActivityService.ActivityStats(c.Request().Context(), userID)
	return c.JSON(http.StatusOK, &ActivityStatsResponse{
		TotalByType: stats.TotalByType,
		StreakDays:  stats.StreakDays,
	})
}

func userIDParam(c echo.Context) (int32, error) {
	id, err := strconv.ParseInt(c.Param("user"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	return int32(id), nil
}
