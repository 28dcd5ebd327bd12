package cmd

import (
	"log"

	"procure.GO/config"
	"procure.GO/core/cache"
	"procure.GO/model/repository"
	adjustmentRepo "procure.GO/model/repository/adjustment"
	itemRepo "procure.GO/model/repository/item"
	orderRepo "procure.GO/model/repository/order"
	requisitionRepo "procure.GO/model/repository/requisition"
	salesRepo "procure.GO/model/repository/sales"
	supplierRepo "procure.GO/model/repository/supplier"
	userRepo "procure.GO/model/repository/user"
	"procure.GO/service/account"
	"procure.GO/service/audit"
	"procure.GO/service/notify"
	"procure.GO/service/procurement"
	"procure.GO/service/stock"
)

// app wires repositories and services for one command run.
type app struct {
	cfg          config.Config
	items        *itemRepo.ItemRepository
	suppliers    *supplierRepo.SupplierRepository
	users        *userRepo.UserRepository
	sales        *salesRepo.SalesRepository
	adjustments  *adjustmentRepo.AdjustmentRepository
	requisitions *requisitionRepo.RequisitionRepository
	orders       *orderRepo.OrderRepository

	stock       *stock.Service
	procurement *procurement.Service
	accounts    *account.Service
	notifier    notify.Notifier
	recorder    audit.Recorder

	closers []func() error
}

func newApp() (*app, error) {
	config.LoadAppConfig()
	cfg := *config.AppConfig
	if storageFlag != "" {
		cfg.StorageRoot = storageFlag
	}
	if auditFlag != "" {
		cfg.AuditDriver = auditFlag
	}

	opts := []repository.Option{
		repository.WithDelimiter(cfg.Delimiter()),
		repository.WithCache(cache.GetInstance()),
	}
	a := &app{
		cfg:          cfg,
		items:        itemRepo.NewItemRepository(cfg.StorageRoot, opts...),
		suppliers:    supplierRepo.NewSupplierRepository(cfg.StorageRoot, opts...),
		users:        userRepo.NewUserRepository(cfg.StorageRoot, opts...),
		sales:        salesRepo.NewSalesRepository(cfg.StorageRoot, opts...),
		adjustments:  adjustmentRepo.NewAdjustmentRepository(cfg.StorageRoot, opts...),
		requisitions: requisitionRepo.NewRequisitionRepository(cfg.StorageRoot, opts...),
		orders:       orderRepo.NewOrderRepository(cfg.StorageRoot, opts...),
	}

	config.InitRedis()
	a.notifier = notify.New(config.RedisClient, cfg.NotifyFeedKey)
	if config.RedisClient != nil {
		a.closers = append(a.closers, config.RedisClient.Close)
	}

	a.recorder = audit.Nop{}
	db, err := config.NewAuditDB(&cfg)
	if err != nil {
		log.Printf("audit disabled: %v", err)
	} else if db != nil {
		rec, err := audit.NewGormRecorder(db)
		if err != nil {
			log.Printf("audit disabled: %v", err)
		} else {
			a.recorder = rec
		}
		if sqlDB, err := db.DB(); err == nil {
			a.closers = append(a.closers, sqlDB.Close)
		}
	}

	a.stock = stock.NewService(a.items, a.sales, a.adjustments)
	a.procurement = procurement.NewService(a.requisitions, a.orders, a.items, a.stock.Ledger(),
		procurement.WithNotifier(a.notifier),
		procurement.WithRecorder(a.recorder),
		procurement.WithDirectory(a.users),
	)
	a.accounts = account.NewService(a.users)
	return a, nil
}

func (a *app) Close() {
	for _, c := range a.closers {
		c()
	}
}

// withApp runs fn with a wired app and releases it afterwards.
func withApp(fn func(a *app) error) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}
