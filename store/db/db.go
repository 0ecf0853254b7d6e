package db

import (
	"github.com/pkg/errors"

	"github.com/king120kw/research-weaver-sub001/internal/profile"
	"github.com/king120kw/research-weaver-sub001/store"
	"github.com/king120kw/research-weaver-sub001/store/db/postgres"
	"github.com/king120kw/research-weaver-sub001/store/db/sqlite"
)

// PostgreSQL is the production database. SQLite is supported for
// development and testing; the schema is small enough that both drivers
// implement the full store.Driver surface.

// NewDBDriver creates new db driver based on profile.
func NewDBDriver(profile *profile.Profile) (store.Driver, error) {
	var driver store.Driver
	var err error

	switch profile.Driver {
	case "sqlite":
		driver, err = sqlite.NewDB(profile)
	case "postgres":
		driver, err = postgres.NewDB(profile)
	default:
		return nil, errors.New("unknown db driver: only 'postgres' and 'sqlite' are supported")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create db driver")
	}
	return driver, nil
}
