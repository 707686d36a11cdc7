package api

import (
	"fmt"

	"github.com/JaimeStill/intake/internal/config"
	"github.com/JaimeStill/intake/internal/requests"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Requests requests.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) (*Domain, error) {
	store, err := newStore(runtime)
	if err != nil {
		return nil, err
	}

	return &Domain{
		Requests: requests.New(
			store,
			runtime.Events,
			runtime.Logger,
			runtime.Pagination,
		),
	}, nil
}

func newStore(runtime *Runtime) (requests.Store, error) {
	switch runtime.StoreDriver {
	case config.StoreDriverPostgres:
		return requests.NewPostgresStore(runtime.Database.Connection()), nil
	case config.StoreDriverMongo:
		store := requests.NewMongoStore(runtime.Documents.Database())
		runtime.Documents.OnStart(store.EnsureIndexes)
		return store, nil
	case config.StoreDriverMemory:
		runtime.Logger.Warn("using in-memory store; requests are lost on restart")
		return requests.NewMemoryStore(nil), nil
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", runtime.StoreDriver)
	}
}
