package ethdev

import (
	"fmt"
	"net"

	"github.com/openpktio/pktio/core/macaddr"
)

func (port EthDev) runtimeEntry(op string) (*deviceEntry, error) {
	entry := port.entry()
	if entry == nil {
		return nil, ErrInvalidPort
	}
	switch entry.state {
	case Configured, Started, Stopped:
		return entry, nil
	}
	return nil, stateError(op, entry.state)
}

// IsPromiscuous reports whether promiscuous mode is enabled.
func (port EthDev) IsPromiscuous() (bool, error) {
	entry, e := port.runtimeEntry("promiscuous")
	if e != nil {
		return false, e
	}
	return entry.promisc, nil
}

// SetPromiscuous enables or disables promiscuous mode.
func (port EthDev) SetPromiscuous(enable bool) error {
	entry, e := port.runtimeEntry("set-promiscuous")
	if e != nil {
		return e
	}
	if pc, ok := entry.drv.(PromiscController); ok {
		if e := pc.SetPromiscuous(enable); e != nil {
			return deviceError("set-promiscuous", e)
		}
	}
	entry.promisc = enable
	return nil
}

// MTU returns the maximum transmission unit.
func (port EthDev) MTU() (int, error) {
	entry, e := port.runtimeEntry("mtu")
	if e != nil {
		return 0, e
	}
	return entry.mtu, nil
}

// SetMTU updates the maximum transmission unit.
func (port EthDev) SetMTU(mtu int) error {
	entry, e := port.runtimeEntry("set-mtu")
	if e != nil {
		return e
	}
	if mtu < 64 {
		return fmt.Errorf("mtu %d: %w", mtu, ErrInvalidArgument)
	}
	if mc, ok := entry.drv.(MTUController); ok {
		if e := mc.SetMTU(mtu); e != nil {
			return deviceError("set-mtu", e)
		}
	}
	entry.mtu = mtu
	return nil
}

// SetMacAddr changes the primary MAC address.
func (port EthDev) SetMacAddr(addr net.HardwareAddr) error {
	entry, e := port.runtimeEntry("set-mac")
	if e != nil {
		return e
	}
	if !macaddr.IsUnicast(addr) {
		return fmt.Errorf("%s is not a unicast address: %w", addr, ErrInvalidArgument)
	}
	mc, ok := entry.drv.(MacController)
	if !ok {
		return fmt.Errorf("set-mac: %w", ErrUnsupported)
	}
	if e := mc.SetMacAddr(addr); e != nil {
		return deviceError("set-mac", e)
	}
	return nil
}

// SetVlanFilter adds or removes a VLAN ID in the filter table.
func (port EthDev) SetVlanFilter(vlan uint16, on bool) error {
	entry, e := port.runtimeEntry("vlan-filter")
	if e != nil {
		return e
	}
	if vlan >= 4096 {
		return fmt.Errorf("vlan %d: %w", vlan, ErrInvalidArgument)
	}
	vc, ok := entry.drv.(VlanController)
	if !ok {
		return fmt.Errorf("vlan-filter: %w", ErrUnsupported)
	}
	if e := vc.SetVlanFilter(vlan, on); e != nil {
		return deviceError("vlan-filter", e)
	}
	return nil
}

// VlanOffload returns active VLAN offload features.
func (port EthDev) VlanOffload() (VlanOffloadMode, error) {
	entry, e := port.runtimeEntry("vlan-offload")
	if e != nil {
		return 0, e
	}
	vc, ok := entry.drv.(VlanController)
	if !ok {
		return 0, fmt.Errorf("vlan-offload: %w", ErrUnsupported)
	}
	return vc.VlanOffload(), nil
}

// SetVlanOffload sets VLAN offload features.
func (port EthDev) SetVlanOffload(mode VlanOffloadMode) error {
	entry, e := port.runtimeEntry("set-vlan-offload")
	if e != nil {
		return e
	}
	vc, ok := entry.drv.(VlanController)
	if !ok {
		return fmt.Errorf("set-vlan-offload: %w", ErrUnsupported)
	}
	if e := vc.SetVlanOffload(mode); e != nil {
		return deviceError("set-vlan-offload", e)
	}
	return nil
}

func (port EthDev) vfController(op string) (VFController, error) {
	entry, e := port.runtimeEntry(op)
	if e != nil {
		return nil, e
	}
	vfc, ok := entry.drv.(VFController)
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, ErrUnsupported)
	}
	return vfc, nil
}

// SetVFRxMode updates the VMDq RX mode of a virtual function.
func (port EthDev) SetVFRxMode(vf int, mode VmdqRxMode, on bool) error {
	vfc, e := port.vfController("set-vf-rxmode")
	if e != nil {
		return e
	}
	if e := vfc.SetVFRxMode(vf, mode, on); e != nil {
		return deviceError("set-vf-rxmode", e)
	}
	return nil
}

// SetVFRx enables or disables receive on a virtual function.
func (port EthDev) SetVFRx(vf int, on bool) error {
	vfc, e := port.vfController("set-vf-rx")
	if e != nil {
		return e
	}
	if e := vfc.SetVFRx(vf, on); e != nil {
		return deviceError("set-vf-rx", e)
	}
	return nil
}

// SetVFTx enables or disables transmit on a virtual function.
func (port EthDev) SetVFTx(vf int, on bool) error {
	vfc, e := port.vfController("set-vf-tx")
	if e != nil {
		return e
	}
	if e := vfc.SetVFTx(vf, on); e != nil {
		return deviceError("set-vf-tx", e)
	}
	return nil
}

// SetLinkUp administratively brings the link up.
func (port EthDev) SetLinkUp() error {
	entry, e := port.runtimeEntry("set-link-up")
	if e != nil {
		return e
	}
	lc, ok := entry.drv.(LinkController)
	if !ok {
		return fmt.Errorf("set-link-up: %w", ErrUnsupported)
	}
	if e := lc.SetLinkUp(); e != nil {
		return deviceError("set-link-up", e)
	}
	return nil
}

// SetLinkDown administratively takes the link down.
func (port EthDev) SetLinkDown() error {
	entry, e := port.runtimeEntry("set-link-down")
	if e != nil {
		return e
	}
	lc, ok := entry.drv.(LinkController)
	if !ok {
		return fmt.Errorf("set-link-down: %w", ErrUnsupported)
	}
	if e := lc.SetLinkDown(); e != nil {
		return deviceError("set-link-down", e)
	}
	return nil
}

// Link retrieves link status, blocking up to several seconds while the
// link resolves.
func (port EthDev) Link() (LinkState, error) {
	entry := port.entry()
	if entry == nil {
		return LinkState{}, ErrInvalidPort
	}
	return entry.drv.Link(true), nil
}

// LinkNowait retrieves link status without waiting for resolution.
func (port EthDev) LinkNowait() (LinkState, error) {
	entry := port.entry()
	if entry == nil {
		return LinkState{}, ErrInvalidPort
	}
	return entry.drv.Link(false), nil
}

// IsDown determines whether the port is valid but its link is down.
func (port EthDev) IsDown() bool {
	link, e := port.LinkNowait()
	return e == nil && !link.Up
}
