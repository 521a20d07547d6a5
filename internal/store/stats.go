package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hotel-access-backend/internal/model"
)

// DashboardStats is the polled dashboard snapshot.
type DashboardStats struct {
	Occupied    int64             `json:"occupied"`
	Vacant      int64             `json:"vacant"`
	Cleaning    int64             `json:"cleaning"`
	TotalGuests int64             `json:"totalGuests"`
	RecentLogs  []model.AccessLog `json:"recentLogs"`
	Revenue     float64           `json:"revenue"`
}

func (s *gormStore) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{RecentLogs: []model.AccessLog{}}

	type statusCount struct {
		Status string
		Count  int64
	}
	var counts []statusCount
	if err := s.db.WithContext(ctx).
		Model(&model.Room{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&counts).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate room statuses: %w", err)
	}
	for _, c := range counts {
		switch strings.ToLower(c.Status) {
		case "occupied":
			stats.Occupied = c.Count
		case "vacant":
			stats.Vacant = c.Count
		case "cleaning":
			stats.Cleaning = c.Count
		}
	}

	if err := s.db.WithContext(ctx).
		Model(&model.Guest{}).
		Where("status = ?", model.GuestCheckedIn).
		Count(&stats.TotalGuests).Error; err != nil {
		return nil, fmt.Errorf("failed to count guests: %w", err)
	}

	if err := s.db.WithContext(ctx).
		Model(&model.Guest{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&stats.Revenue).Error; err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}

	if err := s.db.WithContext(ctx).
		Order("timestamp DESC, id DESC").
		Limit(5).
		Find(&stats.RecentLogs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch recent logs: %w", err)
	}

	return stats, nil
}

// AnalyticsSummary holds the headline cards of the analytics page.
type AnalyticsSummary struct {
	TotalRevenue      float64 `json:"totalRevenue"`
	TotalGuests       int64   `json:"totalGuests"`
	OccupancyRate     string  `json:"occupancyRate"`
	BookingsThisMonth int64   `json:"bookingsThisMonth"`
}

// RevenuePoint is one day of the 7-day revenue series.
type RevenuePoint struct {
	Name    string  `json:"name"` // short weekday
	Revenue float64 `json:"revenue"`
}

// RoomTypeCount is one slice of the room-popularity breakdown.
type RoomTypeCount struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// Transaction is one row of the recent-transactions table.
type Transaction struct {
	ID     string  `json:"id"`
	Date   string  `json:"date"`
	Desc   string  `json:"desc"`
	Amount float64 `json:"amount"`
	Status string  `json:"status"`
}

// AnalyticsReport is the full analytics payload.
type AnalyticsReport struct {
	Stats              AnalyticsSummary `json:"stats"`
	ChartData          []RevenuePoint   `json:"chartData"`
	RoomData           []RoomTypeCount  `json:"roomData"`
	RecentTransactions []Transaction    `json:"recentTransactions"`
}

func (s *gormStore) Analytics(ctx context.Context) (*AnalyticsReport, error) {
	report := &AnalyticsReport{
		ChartData:          []RevenuePoint{},
		RoomData:           []RoomTypeCount{},
		RecentTransactions: []Transaction{},
	}
	db := s.db.WithContext(ctx)
	now := time.Now()

	if err := db.Model(&model.Guest{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&report.Stats.TotalRevenue).Error; err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}

	if err := db.Model(&model.Guest{}).Count(&report.Stats.TotalGuests).Error; err != nil {
		return nil, fmt.Errorf("failed to count guests: %w", err)
	}

	var totalRooms, activeGuests int64
	if err := db.Model(&model.Room{}).Count(&totalRooms).Error; err != nil {
		return nil, fmt.Errorf("failed to count rooms: %w", err)
	}
	if err := db.Model(&model.Guest{}).
		Where("status = ?", model.GuestCheckedIn).
		Count(&activeGuests).Error; err != nil {
		return nil, fmt.Errorf("failed to count active guests: %w", err)
	}
	if totalRooms > 0 {
		report.Stats.OccupancyRate = fmt.Sprintf("%.1f", float64(activeGuests)/float64(totalRooms)*100)
	} else {
		report.Stats.OccupancyRate = "0"
	}

	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if err := db.Model(&model.Guest{}).
		Where("check_in_time >= ?", startOfMonth).
		Count(&report.Stats.BookingsThisMonth).Error; err != nil {
		return nil, fmt.Errorf("failed to count monthly bookings: %w", err)
	}

	chart, err := s.revenueChart(ctx, now)
	if err != nil {
		return nil, err
	}
	report.ChartData = chart

	if err := db.Model(&model.Guest{}).
		Joins("LEFT JOIN rooms ON rooms.id = guests.room_id").
		Select("COALESCE(rooms.type, 'Standard') as name, COUNT(*) as value").
		Group("rooms.type").
		Scan(&report.RoomData).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate room types: %w", err)
	}

	var recent []model.Guest
	if err := db.Preload("Room").
		Order("check_in_time DESC").
		Limit(5).
		Find(&recent).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch recent stays: %w", err)
	}
	for _, g := range recent {
		roomType, roomID := "Standard", g.RoomID
		if g.Room != nil {
			roomType = g.Room.Type
		}
		id := g.ID
		if len(id) > 8 {
			id = id[:8]
		}
		report.RecentTransactions = append(report.RecentTransactions, Transaction{
			ID:     id,
			Date:   g.CheckInTime.Format("1/2/2006"),
			Desc:   fmt.Sprintf("Room Booking - %s (Room %s)", roomType, roomID),
			Amount: g.TotalAmount,
			Status: g.PaymentStatus,
		})
	}

	return report, nil
}

// revenueChart buckets the last seven days of check-in revenue by weekday.
func (s *gormStore) revenueChart(ctx context.Context, now time.Time) ([]RevenuePoint, error) {
	sevenDaysAgo := now.AddDate(0, 0, -7)
	var recent []model.Guest
	if err := s.db.WithContext(ctx).
		Select("check_in_time", "total_amount").
		Where("check_in_time >= ?", sevenDaysAgo).
		Find(&recent).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch recent revenue: %w", err)
	}

	totals := make(map[string]float64, 7)
	days := make([]string, 0, 7)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i).Format("Mon")
		days = append(days, day)
		totals[day] = 0
	}
	for _, g := range recent {
		day := g.CheckInTime.Format("Mon")
		if _, ok := totals[day]; ok {
			totals[day] += g.TotalAmount
		}
	}

	points := make([]RevenuePoint, 0, 7)
	for _, day := range days {
		points = append(points, RevenuePoint{Name: day, Revenue: totals[day]})
	}
	return points, nil
}
