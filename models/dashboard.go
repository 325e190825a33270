package models

// StatusCount is one group of the leads-by-status breakdown.
type StatusCount struct {
	Status string `json:"status" db:"status"`
	Count  int64  `json:"count" db:"count"`
}

// DashboardStats is the aggregate view served by the dashboard endpoint.
type DashboardStats struct {
	TotalLeads           int64         `json:"total_leads"`
	NewLeadsThisWeek     int64         `json:"new_leads_this_week"`
	ClosedLeadsThisMonth int64         `json:"closed_leads_this_month"`
	TotalActivities      int64         `json:"total_activities"`
	LeadsByStatus        []StatusCount `json:"leads_by_status"`
	RecentActivities     []Activity    `json:"recent_activities"`
}
