package database

import (
	"time"

	"drivefund/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// caseInsensitive folds group keys that differ only by case. Status and
// method strings are written by several services and casing is not consistent.
var caseInsensitive = &options.Collation{Locale: "en", Strength: 2}

// looseDateTypes are the non-datetime encodings other services use for created_at.
var looseDateTypes = bson.A{"string", "long", "double"}

// createdAt reads created_at as a date whether it is stored as a datetime, an
// ISO string or epoch milliseconds. Unreadable values become null.
var createdAt = bson.M{"$convert": bson.M{
	"input":   "$created_at",
	"to":      "date",
	"onError": nil,
	"onNull":  nil,
}}

// windowFilter restricts created_at to the analytics window. Datetime values
// match through the index; loosely typed values are converted first. A nil
// since applies no bound.
func windowFilter(since *time.Time) bson.M {
	if since == nil {
		return bson.M{}
	}
	return bson.M{"$or": bson.A{
		bson.M{"created_at": bson.M{"$gte": *since}},
		bson.M{
			"created_at": bson.M{"$type": looseDateTypes},
			"$expr":      bson.M{"$gte": bson.A{createdAt, *since}},
		},
	}}
}

// normalized trims and lower-cases a string field. Other types read as "".
func normalized(field string) bson.M {
	return bson.M{"$toLower": bson.M{"$trim": bson.M{"input": bson.M{"$cond": bson.A{
		bson.M{"$eq": bson.A{bson.M{"$type": "$" + field}, "string"}},
		"$" + field,
		"",
	}}}}}
}

// normalizedIn matches a field against an already normalized vocabulary set.
func normalizedIn(field string, values []string) bson.M {
	if values == nil {
		values = []string{}
	}
	return bson.M{"$in": bson.A{normalized(field), values}}
}

// matchFilter combines the window with expression predicates.
func matchFilter(since *time.Time, exprs ...bson.M) bson.M {
	filter := windowFilter(since)
	switch len(exprs) {
	case 0:
	case 1:
		filter["$expr"] = exprs[0]
	default:
		filter["$expr"] = bson.M{"$and": exprs}
	}
	return filter
}

// numeric coerces a stored amount to a double, treating unreadable values as 0.
func numeric(field string) bson.M {
	return bson.M{"$convert": bson.M{
		"input":   "$" + field,
		"to":      "double",
		"onError": 0,
		"onNull":  0,
	}}
}

func userCountFilter(scope models.UserScope, since *time.Time, v *models.StatusVocabulary) bson.M {
	switch scope {
	case models.UserScopeIdentityLinked:
		return matchFilter(since, bson.M{"$ne": bson.A{normalized("privy_id"), ""}})
	case models.UserScopeVerified:
		return matchFilter(since, bson.M{"$or": bson.A{
			normalizedIn("role", v.AdminRoles),
			bson.M{"$eq": bson.A{"$is_verified", true}},
			normalizedIn("kyc_status", v.VerifiedStatuses),
		}})
	}
	return matchFilter(since)
}

func successfulDepositFilter(since *time.Time, v *models.StatusVocabulary) bson.M {
	return matchFilter(since,
		normalizedIn("type", v.DepositTypes),
		normalizedIn("status", v.SuccessfulStatuses),
	)
}

func successfulReturnFilter(since *time.Time, v *models.StatusVocabulary) bson.M {
	return matchFilter(since,
		normalizedIn("type", v.ReturnTypes),
		normalizedIn("status", v.SuccessfulStatuses),
	)
}

func confirmedPoolInvestmentFilter(since *time.Time, v *models.StatusVocabulary) bson.M {
	return matchFilter(since, normalizedIn("status", v.ConfirmedPoolStatuses))
}

func countedLegacyInvestmentFilter(since *time.Time, v *models.StatusVocabulary) bson.M {
	return matchFilter(since, normalizedIn("status", v.CountedLegacyStatuses))
}

// sumPipeline totals the amount field over matching documents into {total}.
func sumPipeline(match bson.M) []bson.M {
	return []bson.M{
		{"$match": match},
		{"$group": bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": numeric("amount")},
		}},
	}
}

func poolStatusPipeline(since *time.Time) []bson.M {
	return []bson.M{
		{"$match": windowFilter(since)},
		{"$group": bson.M{
			"_id":    "$status",
			"count":  bson.M{"$sum": 1},
			"raised": bson.M{"$sum": numeric("raised_amount")},
			"target": bson.M{"$sum": numeric("target_amount")},
		}},
	}
}

func depositMethodPipeline(since *time.Time, v *models.StatusVocabulary) []bson.M {
	return []bson.M{
		{"$match": successfulDepositFilter(since, v)},
		{"$group": bson.M{
			"_id":   "$method",
			"total": bson.M{"$sum": numeric("amount")},
			"count": bson.M{"$sum": 1},
		}},
	}
}

func assetGroupPipeline(since *time.Time) []bson.M {
	return []bson.M{
		{"$match": windowFilter(since)},
		{"$group": bson.M{
			"_id":            "$asset_type",
			"pool_count":     bson.M{"$sum": 1},
			"investor_count": bson.M{"$sum": numeric("investor_count")},
			"raised":         bson.M{"$sum": numeric("raised_amount")},
			"target":         bson.M{"$sum": numeric("target_amount")},
		}},
	}
}

// recentOptions returns the newest limit documents first.
func recentOptions(limit int) *options.FindOptions {
	return options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))
}
