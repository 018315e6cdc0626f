package bootstrap

import (
	"FragFS/internal/application/service"
	"FragFS/internal/domain"
	"FragFS/internal/platform/api/zmq"
	"FragFS/internal/platform/config"
	"FragFS/internal/platform/messaging/zeromq/publisher"
	"FragFS/internal/platform/repository"
	"FragFS/internal/platform/repository/logstore"
	"FragFS/internal/platform/server"
	"FragFS/internal/platform/server/handler/disk"
	"FragFS/internal/platform/server/handler/file"
	"log"

	"go.uber.org/dig"
)

func Run() (bool, error) {
	container := dig.New()
	serviceConstructors := []interface{}{
		config.LoadConfig,
		wal,
		logstore.NewMemtable,
		medium,
		layoutPublisher,
		store,
		service.NewCreateFileService,
		service.NewDeleteFileService,
		service.NewResizeFileService,
		service.NewDefragmentService,
		service.NewWipeService,
		service.NewRestoreService,
		service.NewGetLayoutService,
		file.NewFileHandler,
		disk.NewDiskHandler,
		server.NewServer,
		zmq.NewZmqApi,
	}
	for _, service := range serviceConstructors {
		if err := container.Provide(service); err != nil {
			return false, err
		}
	}
	var runErr error
	err := container.Invoke(func(s server.Server, api *zmq.ZmqApi, restore *service.RestoreService, cfg config.Config) {
		if cfg.SnapshotDirectory != "" {
			// pick up the layout left by the previous run
			if result := restore.Execute(); result.Err != nil {
				log.Println("Starting with an empty store:", result.Err)
			}
		}
		go func() {
			if err := api.Listen(); err != nil {
				log.Println(err)
			}
		}()
		defer api.Close()
		runErr = s.Run()
	})
	if err != nil {
		return false, err
	}
	if runErr != nil {
		return false, runErr
	}
	return true, nil
}

// wal is nil when no snapshot directory is configured and the memtable then
// lives in memory only.
func wal(cfg config.Config) (*logstore.WAL, error) {
	if cfg.SnapshotDirectory == "" {
		return nil, nil
	}
	return logstore.NewWal(cfg.SnapshotDirectory)
}

func medium(mt *logstore.Memtable) domain.PersistenceMedium {
	return repository.NewMemtableMedium(mt)
}

func store(cfg config.Config, medium domain.PersistenceMedium) *domain.Store {
	return domain.NewStore(cfg.BlockCount, medium, nil)
}

func layoutPublisher(cfg config.Config) (domain.LayoutPublisher, error) {
	return publisher.NewZeroMQLayoutPublisher(cfg.LayoutPubPort)
}
