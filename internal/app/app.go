// Package app wires the stores and services of mealcare around one database
// pool. Callers own the returned App and must Close it.
package app

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	auditsvc "mealcare/internal/audit/service"
	auditstore "mealcare/internal/audit/store"
	menusvc "mealcare/internal/menu/service"
	menustore "mealcare/internal/menu/store"
	ordersvc "mealcare/internal/order/service"
	orderstore "mealcare/internal/order/store"
	"mealcare/internal/platform/config"
	"mealcare/internal/platform/database"
	"mealcare/internal/platform/logger"
	"mealcare/internal/platform/metrics"
	residentsvc "mealcare/internal/resident/service"
	residentstore "mealcare/internal/resident/store"
	tenantsvc "mealcare/internal/tenant/service"
	"mealcare/internal/tenant/store/facility"
	tenantstore "mealcare/internal/tenant/store/tenant"
	"mealcare/internal/user/password"
	usersvc "mealcare/internal/user/service"
	userstore "mealcare/internal/user/store"
	"mealcare/pkg/platform/tx"
)

type App struct {
	DB       *sql.DB
	Logger   *slog.Logger
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics
	Tx       tx.Runner

	Audit     *auditsvc.Service
	Tenants   *tenantsvc.TenantService
	Facility  *tenantsvc.FacilityService
	Users     *usersvc.Service
	Residents *residentsvc.Service
	Menus     *menusvc.Service
	Orders    *ordersvc.Service
}

type options struct {
	logger     *slog.Logger
	txTimeout  time.Duration
	bcryptCost int
}

type Option func(*options)

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithTxTimeout bounds transactions started without a caller deadline.
func WithTxTimeout(d time.Duration) Option {
	return func(o *options) {
		o.txTimeout = d
	}
}

// WithBcryptCost overrides the password hashing cost. Tests lower it.
func WithBcryptCost(cost int) Option {
	return func(o *options) {
		o.bcryptCost = cost
	}
}

// Open connects to the configured database and wires every service.
func Open(ctx context.Context, cfg config.Config, opts ...Option) (*App, error) {
	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	opts = append([]Option{WithTxTimeout(cfg.Database.TxTimeout)}, opts...)
	return New(db, opts...), nil
}

// New wires services over an open pool. Every service shares one metrics set
// registered on a private registry, and one transaction runner.
func New(db *sql.DB, opts ...Option) *App {
	o := options{logger: logger.Discard()}
	for _, opt := range opts {
		opt(&o)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db, "mealcare"),
	)
	m := metrics.New(reg)
	runner := tx.NewSQLRunner(db, tx.WithTimeout(o.txTimeout), tx.WithObserver(m))

	a := &App{
		DB:       db,
		Logger:   o.logger,
		Registry: reg,
		Metrics:  m,
		Tx:       runner,
	}

	a.Audit = auditsvc.New(auditstore.NewPostgres(db),
		auditsvc.WithLogger(o.logger.With("component", "audit")),
		auditsvc.WithMetrics(m),
	)

	facilities := facility.NewPostgres(db)
	a.Tenants = tenantsvc.NewTenantService(tenantstore.NewPostgres(db), a.Audit,
		tenantsvc.WithLogger(o.logger.With("component", "tenant")),
		tenantsvc.WithMetrics(m),
		tenantsvc.WithTx(runner),
	)
	a.Facility = tenantsvc.NewFacilityService(facilities, a.Audit,
		tenantsvc.WithLogger(o.logger.With("component", "facility")),
		tenantsvc.WithMetrics(m),
		tenantsvc.WithTx(runner),
	)

	a.Users = usersvc.New(userstore.NewPostgres(db), password.NewBcrypt(o.bcryptCost), a.Audit,
		usersvc.WithLogger(o.logger.With("component", "user")),
		usersvc.WithMetrics(m),
		usersvc.WithTx(runner),
	)

	a.Residents = residentsvc.New(residentstore.NewPostgres(db), facilities, a.Audit,
		residentsvc.WithLogger(o.logger.With("component", "resident")),
		residentsvc.WithMetrics(m),
		residentsvc.WithTx(runner),
	)

	a.Menus = menusvc.New(menustore.NewPostgres(db), a.Audit,
		menusvc.WithLogger(o.logger.With("component", "menu")),
		menusvc.WithMetrics(m),
		menusvc.WithTx(runner),
	)

	a.Orders = ordersvc.New(orderstore.NewPostgres(db), a.Menus, a.Residents, a.Audit,
		ordersvc.WithLogger(o.logger.With("component", "order")),
		ordersvc.WithMetrics(m),
		ordersvc.WithTx(runner),
	)
	return a
}

func (a *App) Close() error {
	return a.DB.Close()
}
