package ethdev

import (
	"fmt"
	"strings"
	"sync"
)

// DriverFactory creates a Driver instance from parsed device arguments.
type DriverFactory func(name string, args map[string]string) (Driver, error)

var (
	factoriesLock sync.Mutex
	factories     = map[string]DriverFactory{}
)

// RegisterDriver registers a driver factory under a name prefix, such
// as "net_ring". Attach dispatches on this prefix.
func RegisterDriver(prefix string, factory DriverFactory) {
	factoriesLock.Lock()
	defer factoriesLock.Unlock()
	if _, ok := factories[prefix]; ok {
		logger.Panic("duplicate driver prefix " + prefix)
	}
	factories[prefix] = factory
}

// Attach creates a port from a device argument string in the form
// "name,key=value,key=value". The name must begin with a registered
// driver prefix.
func Attach(devargs string) (EthDev, error) {
	name, args, e := parseDevargs(devargs)
	if e != nil {
		return EthDev{}, e
	}
	if Find(name).Valid() {
		return EthDev{}, fmt.Errorf("device %s already attached: %w", name, ErrInvalidArgument)
	}

	factoriesLock.Lock()
	var factory DriverFactory
	for prefix, f := range factories {
		if strings.HasPrefix(name, prefix) {
			factory = f
			break
		}
	}
	factoriesLock.Unlock()
	if factory == nil {
		return EthDev{}, fmt.Errorf("no driver for device %s: %w", name, ErrInvalidArgument)
	}

	drv, e := factory(name, args)
	if e != nil {
		return EthDev{}, fmt.Errorf("driver for %s: %w", name, e)
	}
	return New(name, drv)
}

func parseDevargs(devargs string) (name string, args map[string]string, e error) {
	fields := strings.Split(devargs, ",")
	name = strings.TrimSpace(fields[0])
	if name == "" {
		return "", nil, fmt.Errorf("empty device name: %w", ErrInvalidArgument)
	}
	args = map[string]string{}
	for _, field := range fields[1:] {
		key, value, ok := strings.Cut(field, "=")
		if !ok || key == "" {
			return "", nil, fmt.Errorf("malformed device argument %q: %w", field, ErrInvalidArgument)
		}
		args[key] = value
	}
	return name, args, nil
}
