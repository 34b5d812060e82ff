package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"time"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

const activateMessage = "activate\n"

// InstanceGuard holds the single-instance lock.
type InstanceGuard struct {
	listener net.Listener
	address  string
}

// AcquireSingleInstance attempts to bind a deterministic localhost port.
func AcquireSingleInstance(appName string) (*InstanceGuard, error) {
	address := instanceAddress(appName)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, ErrAlreadyRunning
	}
	return &InstanceGuard{listener: listener, address: address}, nil
}

// OnActivate calls handler whenever a later instance asks this one to come
// to the front. It returns once the guard is released.
func (guard *InstanceGuard) OnActivate(handler func()) {
	if guard == nil || guard.listener == nil {
		return
	}
	for {
		conn, err := guard.listener.Accept()
		if err != nil {
			return
		}
		buffer := make([]byte, len(activateMessage))
		_ = conn.SetReadDeadline(time.Now().Add(time.Second))
		n, _ := conn.Read(buffer)
		_ = conn.Close()
		if string(buffer[:n]) == activateMessage && handler != nil {
			handler()
		}
	}
}

// ActivateRunningInstance asks the instance holding the lock to show itself.
func ActivateRunningInstance(appName string) error {
	conn, err := net.DialTimeout("tcp", instanceAddress(appName), time.Second)
	if err != nil {
		return fmt.Errorf("reach running instance: %w", err)
	}
	defer conn.Close()
	if _, err := conn.Write([]byte(activateMessage)); err != nil {
		return fmt.Errorf("activate running instance: %w", err)
	}
	return nil
}

// Release frees the single instance lock.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	return guard.listener.Close()
}

// Address returns the bound address.
func (guard *InstanceGuard) Address() string {
	if guard == nil {
		return ""
	}
	return guard.address
}

func instanceAddress(appName string) string {
	return fmt.Sprintf("127.0.0.1:%d", portFromName(appName))
}

func portFromName(appName string) int {
	const (
		minPort = 20000
		maxPort = 39999
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	rangeSize := maxPort - minPort + 1
	return minPort + int(hash.Sum32()%uint32(rangeSize))
}
