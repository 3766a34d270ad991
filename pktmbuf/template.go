package pktmbuf

import (
	"strings"

	"github.com/openpktio/pktio/mempool"
	"github.com/openpktio/pktio/numa"
	"go.uber.org/zap"
)

var templates = make(map[string]*template)

func validateTemplateID(id string) bool {
	for _, ch := range id {
		if !strings.ContainsRune("ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789", ch) {
			return false
		}
	}
	return len(id) > 0
}

// PoolInfo augments *Pool with NUMA socket information.
type PoolInfo struct {
	*Pool
	socket numa.Socket
}

// NumaSocket returns NUMA socket on which the Pool was created.
func (pool PoolInfo) NumaSocket() numa.Socket {
	return pool.socket
}

// Template represents a template to create packet buffer pools.
type Template interface {
	// ID returns template identifier.
	ID() string

	// Config returns current configuration.
	Config() PoolConfig

	// Update changes pool configuration.
	// Returns self.
	Update(update PoolConfig) Template

	// Pools returns a list of created Pools.
	Pools() []PoolInfo

	// Get retrieves or creates a Pool on the given NUMA socket.
	// Errors are fatal.
	Get(socket numa.Socket) *Pool
}

type template struct {
	id    string
	cfg   PoolConfig
	pools map[numa.Socket]*Pool
}

func (tpl *template) ID() string {
	return tpl.id
}

func (tpl *template) Config() PoolConfig {
	return tpl.cfg
}

func (tpl *template) Update(update PoolConfig) Template {
	if update.Capacity > 0 {
		tpl.cfg.Capacity = update.Capacity
	}
	if update.Headroom > 0 {
		tpl.cfg.Headroom = update.Headroom
	}
	if update.Dataroom > 0 {
		if update.Dataroom < tpl.cfg.Dataroom {
			logger.Info("decreasing Dataroom",
				zap.String("template", tpl.id),
				zap.Int("old-dataroom", tpl.cfg.Dataroom),
				zap.Int("new-dataroom", update.Dataroom),
			)
		}
		tpl.cfg.Dataroom = update.Dataroom
	}
	return tpl
}

func (tpl *template) Pools() (list []PoolInfo) {
	for socket, pool := range tpl.pools {
		list = append(list, PoolInfo{Pool: pool, socket: socket})
	}
	return list
}

func (tpl *template) Get(socket numa.Socket) *Pool {
	useSocket := socket
	if len(numa.Sockets()) <= 1 {
		useSocket = numa.Socket{}
	}

	if pool, ok := tpl.pools[useSocket]; ok {
		return pool
	}

	pool, e := NewPool(tpl.cfg, useSocket)
	if e != nil {
		logger.Fatal("pool creation failed",
			zap.String("template", tpl.id),
			zap.Stringer("socket", useSocket),
			zap.Error(e),
		)
	}
	tpl.pools[useSocket] = pool
	logger.Debug("pool created",
		zap.String("template", tpl.id),
		zap.Stringer("socket", useSocket),
		zap.Stringer("pool", pool),
	)
	return pool
}

// RegisterTemplate adds a pool template.
func RegisterTemplate(id string, cfg PoolConfig) Template {
	if _, ok := templates[id]; ok {
		logger.Panic("duplicate template ID", zap.String("template", id))
	}
	if !validateTemplateID(id) {
		logger.Panic("template ID can only contain upper-case letters and digits", zap.String("template", id))
	}
	tpl := &template{
		id:    id,
		cfg:   cfg,
		pools: make(map[numa.Socket]*Pool),
	}
	templates[id] = tpl
	return tpl
}

// FindTemplate locates template by ID.
func FindTemplate(id string) Template {
	return templates[id]
}

// Direct is a pool template for packet buffers with dataroom.
var Direct Template

func init() {
	Direct = RegisterTemplate("DIRECT", PoolConfig{
		Capacity: mempool.ComputeOptimumCapacity(65536),
		Dataroom: DefaultDataroom,
	})
}

// TemplateUpdates contains updates to several pool templates.
type TemplateUpdates map[string]PoolConfig

// Apply applies the updates.
func (updates TemplateUpdates) Apply() {
	for key, update := range updates {
		tpl := FindTemplate(key)
		if tpl == nil {
			logger.Warn("unknown pool template", zap.String("template", key))
			continue
		}
		tpl.Update(update)
	}
}
