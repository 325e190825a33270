package store

import (
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-lead-keeper/models"
)

var (
	userColumns = []string{"id", "username", "email", "password_hash", "first_name", "last_name", "created_at"}

	leadColumns = []string{
		"id", "first_name", "last_name", "email", "phone", "status", "source",
		"budget_min", "budget_max", "property_interest", "is_active",
		"created_at", "updated_at", "activity_count",
	}

	activityColumns = []string{
		"id", "lead_id", "user_id", "activity_type", "title", "notes",
		"duration", "activity_date", "created_at", "user_name",
	}

	// searchable lead columns of the free-text query
	leadSearchColumns = []string{"first_name", "last_name", "email", "phone"}
)

const (
	statusFilterAll     = "all"
	recentActivityLimit = 10
)

func returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}

func buildInsertUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Insert(user.TableName()).
		Columns("username", "email", "password_hash", "first_name", "last_name", "created_at").
		Values(user.Username, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.CreatedAt).
		Suffix(returning(userColumns)).
		ToSql()
}

func buildFindUserByUsernameQuery(b sq.StatementBuilderType, username string) (string, []any, error) {
	return b.Select(userColumns...).
		From(models.User{}.TableName()).
		Where(sq.Eq{"username": username}).
		ToSql()
}

func buildUpdatePasswordHashQuery(b sq.StatementBuilderType, userID int64, passwordHash string) (string, []any, error) {
	return b.Update(models.User{}.TableName()).
		Set("password_hash", passwordHash).
		Where(sq.Eq{"id": userID}).
		ToSql()
}

// buildSearchLeadsQuery builds the filtered, paginated lead search. The
// status filter is trimmed and lowercased; "" and "all" disable it.
func buildSearchLeadsQuery(b sq.StatementBuilderType, filter models.LeadFilter) (string, []any, error) {
	query := b.Select(leadColumns...).
		From(models.Lead{}.TableName()).
		Where(sq.Eq{"is_active": true})

	if filter.Query != "" {
		pattern := "%" + strings.ToLower(filter.Query) + "%"
		anyColumn := make(sq.Or, 0, len(leadSearchColumns))
		for _, column := range leadSearchColumns {
			anyColumn = append(anyColumn, sq.Like{"LOWER(" + column + ")": pattern})
		}
		query = query.Where(anyColumn)
	}

	if status := strings.ToLower(strings.TrimSpace(filter.Status)); status != "" && status != statusFilterAll {
		query = query.Where(sq.Eq{"status": status})
	}

	if filter.Source != "" {
		query = query.Where(sq.Eq{"source": filter.Source})
	}

	if filter.MinBudget != nil {
		query = query.Where(sq.Or{
			sq.GtOrEq{"budget_min": *filter.MinBudget},
			sq.GtOrEq{"budget_max": *filter.MinBudget},
		})
	}

	if filter.MaxBudget != nil {
		query = query.Where(sq.Or{
			sq.LtOrEq{"budget_max": *filter.MaxBudget},
			sq.LtOrEq{"budget_min": *filter.MaxBudget},
		})
	}

	return query.
		OrderBy("created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.Size).
		ToSql()
}

func buildInsertLeadQuery(b sq.StatementBuilderType, lead models.LeadCreate, now time.Time) (string, []any, error) {
	lead = lead.WithDefaults()

	return b.Insert(models.Lead{}.TableName()).
		Columns(
			"first_name", "last_name", "email", "phone", "status", "source",
			"budget_min", "budget_max", "property_interest", "is_active",
			"created_at", "updated_at", "activity_count",
		).
		Values(
			lead.FirstName, lead.LastName, lead.Email, lead.Phone, lead.Status, lead.Source,
			lead.BudgetMin, lead.BudgetMax, lead.PropertyInterest, true,
			now, now, 0,
		).
		Suffix(returning(leadColumns)).
		ToSql()
}

func buildGetLeadQuery(b sq.StatementBuilderType, leadID int64) (string, []any, error) {
	return b.Select(leadColumns...).
		From(models.Lead{}.TableName()).
		Where(sq.Eq{"id": leadID}).
		Where(sq.Eq{"is_active": true}).
		ToSql()
}

// buildUpdateLeadQuery sets the present fields of update plus updated_at.
func buildUpdateLeadQuery(b sq.StatementBuilderType, leadID int64, update models.LeadUpdate, now time.Time) (string, []any, error) {
	return b.Update(models.Lead{}.TableName()).
		SetMap(update.Fields()).
		Set("updated_at", now).
		Where(sq.Eq{"id": leadID}).
		Where(sq.Eq{"is_active": true}).
		Suffix(returning(leadColumns)).
		ToSql()
}

func buildDeleteLeadQuery(b sq.StatementBuilderType, leadID int64) (string, []any, error) {
	return b.Update(models.Lead{}.TableName()).
		Set("is_active", false).
		Where(sq.Eq{"id": leadID}).
		Where(sq.Eq{"is_active": true}).
		ToSql()
}

// buildIncrementActivityCountQuery adds n to activity_count in place and
// returns the lead id, so no row means the lead is missing or inactive.
func buildIncrementActivityCountQuery(b sq.StatementBuilderType, leadID int64, n int) (string, []any, error) {
	return b.Update(models.Lead{}.TableName()).
		Set("activity_count", sq.Expr("activity_count + ?", n)).
		Where(sq.Eq{"id": leadID}).
		Where(sq.Eq{"is_active": true}).
		Suffix("RETURNING id").
		ToSql()
}

func buildInsertActivityQuery(b sq.StatementBuilderType, activity models.Activity) (string, []any, error) {
	return b.Insert(models.Activity{}.TableName()).
		Columns(
			"lead_id", "user_id", "activity_type", "title", "notes",
			"duration", "activity_date", "created_at", "user_name",
		).
		Values(
			activity.LeadID, activity.UserID, activity.ActivityType, activity.Title, activity.Notes,
			activity.Duration, activity.ActivityDate, activity.CreatedAt, activity.UserName,
		).
		Suffix(returning(activityColumns)).
		ToSql()
}

func buildListActivitiesQuery(b sq.StatementBuilderType, leadID int64) (string, []any, error) {
	return b.Select(activityColumns...).
		From(models.Activity{}.TableName()).
		Where(sq.Eq{"lead_id": leadID}).
		OrderBy("activity_date DESC", "created_at DESC").
		ToSql()
}

func buildLeadExistsQuery(b sq.StatementBuilderType, leadID int64) (string, []any, error) {
	return b.Select("id").
		From(models.Lead{}.TableName()).
		Where(sq.Eq{"id": leadID}).
		Where(sq.Eq{"is_active": true}).
		ToSql()
}

func buildCountLeadsQuery(b sq.StatementBuilderType, conditions ...sq.Sqlizer) (string, []any, error) {
	query := b.Select("COUNT(*)").From(models.Lead{}.TableName())
	for _, condition := range conditions {
		query = query.Where(condition)
	}
	return query.ToSql()
}

func buildCountActivitiesQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Select("COUNT(*)").From(models.Activity{}.TableName()).ToSql()
}

func buildLeadsByStatusQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Select("status", "COUNT(*) AS count").
		From(models.Lead{}.TableName()).
		Where(sq.Eq{"is_active": true}).
		GroupBy("status").
		OrderBy("status").
		ToSql()
}

func buildRecentActivitiesQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Select(activityColumns...).
		From(models.Activity{}.TableName()).
		OrderBy("activity_date DESC", "created_at DESC").
		Limit(recentActivityLimit).
		ToSql()
}
