package domain

import "time"

// StatusCount is one slice of the status breakdown.
type StatusCount struct {
	Status string `bson:"_id" json:"status"`
	Count  int64  `bson:"count" json:"count"`
}

// DailyBucket is one day of the trailing-week order trend.
type DailyBucket struct {
	Date    string  `bson:"_id" json:"date"`
	Day     string  `json:"day"`
	Orders  int64   `bson:"orders" json:"orders"`
	Revenue float64 `bson:"revenue" json:"revenue"`
}

// Overview is the admin dashboard snapshot.
type Overview struct {
	TotalOrders        int64         `json:"totalOrders"`
	TotalRevenue       float64       `json:"totalRevenue"`
	TotalReservations  int64         `json:"totalReservations"`
	ActiveReservations int64         `json:"activeReservations"`
	OrdersByStatus     []StatusCount `json:"ordersByStatus"`
	LastSevenDays      []DailyBucket `json:"lastSevenDays"`
}

// DayName resolves a YYYY-MM-DD bucket key to its weekday label; buckets with
// malformed keys fall back to the raw key.
func DayName(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Weekday().String()
}
