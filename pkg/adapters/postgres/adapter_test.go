package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/leapstack-labs/ensvar/pkg/adapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPostgresDSN(t *testing.T) {
	tests := []struct {
		name     string
		config   adapter.Config
		expected string
	}{
		{
			name: "credentials",
			config: adapter.Config{
				Host:     "ensembldb.example.org",
				Port:     5432,
				Database: "homo_sapiens_variation",
				Username: "anonymous",
				Password: "secret",
			},
			expected: "dbname=homo_sapiens_variation host=ensembldb.example.org password=secret port=5432 sslmode=disable user=anonymous",
		},
		{
			name: "sslmode from options",
			config: adapter.Config{
				Host:     "prod.example.com",
				Database: "variation",
				Username: "reader",
				Options:  map[string]string{"sslmode": "require"},
			},
			expected: "dbname=variation host=prod.example.com port=5432 sslmode=require user=reader",
		},
		{
			name:     "defaults",
			config:   adapter.Config{Database: "variation"},
			expected: "dbname=variation host=localhost port=5432 sslmode=disable",
		},
		{
			name: "schema and application name",
			config: adapter.Config{
				Port:     5433,
				Database: "homo_sapiens_variation",
				Schema:   "variation",
				Options:  map[string]string{"application_name": "ensvar"},
			},
			expected: "application_name=ensvar dbname=homo_sapiens_variation host=localhost port=5433 search_path=variation sslmode=disable",
		},
		{
			name: "quoted password",
			config: adapter.Config{
				Database: "variation",
				Password: `it's a pass\word`,
			},
			expected: `dbname=variation host=localhost password='it\'s a pass\\word' port=5432 sslmode=disable`,
		},
		{
			name:     "empty database",
			config:   adapter.Config{},
			expected: "dbname='' host=localhost port=5432 sslmode=disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, buildPostgresDSN(tt.config))
		})
	}
}

func TestNew(t *testing.T) {
	adp := New(nil)

	assert.False(t, adp.IsConnected())
	require.NotNil(t, adp.Dialect())
	assert.Equal(t, "postgres", adp.Dialect().GetName())
	assert.Equal(t, "$2", adp.Dialect().FormatPlaceholder(2))
	assert.Equal(t, "public", adp.Dialect().DefaultSchema)

	var _ adapter.Adapter = adp
}

func TestAdapter_NotConnected(t *testing.T) {
	ctx := context.Background()
	adp := New(nil)

	assert.ErrorIs(t, adp.Exec(ctx, "SELECT 1"), adapter.ErrNotConnected)

	_, err := adp.Query(ctx, "SELECT 1")
	assert.ErrorIs(t, err, adapter.ErrNotConnected)

	_, err = adp.GetTableMetadata(ctx, "allele")
	assert.ErrorIs(t, err, adapter.ErrNotConnected)

	assert.NoError(t, adp.Close())
}

func TestAdapter_GetTableMetadataMarksPrimaryKey(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	adp := New(nil)
	adp.DB = db
	adp.Cfg.Schema = "variation"

	mock.ExpectQuery("information_schema.columns").
		WithArgs("variation", "source").
		WillReturnRows(sqlmock.NewRows([]string{"column_name", "data_type", "is_nullable", "ordinal_position"}).
			AddRow("source_id", "integer", "NO", 1).
			AddRow("name", "character varying", "YES", 2))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM "variation"."source"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	mock.ExpectQuery("PRIMARY KEY").
		WithArgs("variation", "source").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("source_id"))

	meta, err := adp.GetTableMetadata(context.Background(), "source")
	require.NoError(t, err)
	require.Len(t, meta.Columns, 2)
	assert.True(t, meta.Columns[0].PrimaryKey)
	assert.False(t, meta.Columns[1].PrimaryKey)
	assert.Equal(t, int64(4), meta.RowCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_Registry(t *testing.T) {
	factory, ok := adapter.Get("postgres")
	require.True(t, ok, "postgres adapter should be registered")

	pg, ok := factory(nil).(*Adapter)
	require.True(t, ok, "factory should return *Adapter")
	assert.Equal(t, "postgres", pg.Dialect().GetName())
}
