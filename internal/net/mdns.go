package net

import (
	"context"
	"fmt"
	"log"
	"net"
	"time"

	"github.com/hashicorp/mdns"
)

const ServiceType = "_sketch3d._tcp"

// Advertise announces the recognition service on the local network until the returned
// server is shut down.
func Advertise(instance string, port int) (*mdns.Server, error) {
	info := []string{"SketchBoard3D", "path=/api/vectorize"}

	service, err := mdns.NewMDNSService(
		instance,
		ServiceType,
		"", // .local
		"", // OS hostname
		port,
		[]net.IP{firstIPv4()},
		info,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	log.Printf("[MDNS] Advertising %s as %q on port %d", ServiceType, instance, port)
	return server, nil
}

// Browse queries the network for recognition services and reports each as host:port.
// It returns once timeout elapses or ctx is done.
func Browse(ctx context.Context, timeout time.Duration, found func(addr string)) error {
	entries := make(chan *mdns.ServiceEntry, 8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range entries {
			if e.AddrV4 == nil || e.Port == 0 {
				continue
			}
			found(net.JoinHostPort(e.AddrV4.String(), fmt.Sprint(e.Port)))
		}
	}()

	params := mdns.DefaultParams(ServiceType)
	params.Entries = entries
	params.Timeout = timeout
	params.DisableIPv6 = true

	errCh := make(chan error, 1)
	go func() { errCh <- mdns.Query(params) }()

	var err error
	select {
	case err = <-errCh:
	case <-ctx.Done():
		err = ctx.Err()
		// Query still owns entries until it returns.
		<-errCh
	}
	close(entries)
	<-done
	if err != nil {
		return fmt.Errorf("mdns browse: %w", err)
	}
	return nil
}

// Discover returns the first service address found within timeout.
func Discover(ctx context.Context, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	addrCh := make(chan string, 1)
	err := Browse(ctx, timeout, func(addr string) {
		select {
		case addrCh <- addr:
			cancel()
		default:
		}
	})
	select {
	case addr := <-addrCh:
		return addr, nil
	default:
	}
	if err != nil {
		return "", err
	}
	return "", fmt.Errorf("no %s service found within %v", ServiceType, timeout)
}
