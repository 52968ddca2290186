package store

import (
	"database/sql"

	"github.com/MindweaveTech/restaurantdaily/internal/parser"
)

// 解析记录的字段都是可空标量，统一经 sql.Null* 落库

func ns(r parser.Record, key string) sql.NullString {
	if v, ok := r.Str(key); ok {
		return sql.NullString{String: v, Valid: true}
	}
	return sql.NullString{}
}

func nf(r parser.Record, key string) sql.NullFloat64 {
	if v, ok := r.Float(key); ok {
		return sql.NullFloat64{Float64: v, Valid: true}
	}
	return sql.NullFloat64{}
}

func ni(r parser.Record, key string) sql.NullInt64 {
	if v, ok := r.Int(key); ok {
		return sql.NullInt64{Int64: v, Valid: true}
	}
	return sql.NullInt64{}
}
