package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructDatabaseURL(t *testing.T) {
	tests := []struct {
		name     string
		baseURL  string
		database string
		want     string
	}{
		{
			name:    "no database name keeps url",
			baseURL: "postgres://u:p@localhost:5432/treasury",
			want:    "postgres://u:p@localhost:5432/treasury",
		},
		{
			name:     "appends database and sslmode",
			baseURL:  "postgres://u:p@localhost:5432/",
			database: "treasury",
			want:     "postgres://u:p@localhost:5432/treasury?sslmode=disable",
		},
		{
			name:     "keeps existing query parameters",
			baseURL:  "postgres://u:p@localhost:5432?application_name=accrual",
			database: "treasury",
			want:     "postgres://u:p@localhost:5432/treasury?application_name=accrual&sslmode=disable",
		},
		{
			name:     "respects explicit sslmode",
			baseURL:  "postgres://u:p@db:5432?sslmode=require",
			database: "treasury",
			want:     "postgres://u:p@db:5432/treasury?sslmode=require",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConstructDatabaseURL(tt.baseURL, tt.database))
		})
	}
}
