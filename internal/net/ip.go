package net

import (
	"fmt"
	"log"
	"net"
	"strconv"

	"SketchBoard3D/internal/config"
)

// OutgoingIP finds the local address other machines on the LAN can reach this host at.
func OutgoingIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		// No route to the internet: fall back to the interface list.
		return firstIPv4().String()
	}
	defer conn.Close()

	return conn.LocalAddr().(*net.UDPAddr).IP.String()
}

// firstIPv4 returns the first IPv4 address of an up, non-loopback interface.
func firstIPv4() net.IP {
	ifaces, _ := net.Interfaces()
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, _ := iface.Addrs()
		for _, a := range addrs {
			if ipnet, ok := a.(*net.IPNet); ok && ipnet.IP.To4() != nil {
				return ipnet.IP.To4()
			}
		}
	}
	log.Println("[NET] No suitable local IP found, falling back to loopback")
	return net.IPv4(127, 0, 0, 1)
}

// PortOf extracts the numeric port from a listen address such as ":8888".
func PortOf(addr string) (int, error) {
	_, p, err := net.SplitHostPort(addr)
	if err != nil {
		return 0, fmt.Errorf("parse listen address %q: %w", addr, err)
	}
	port, err := strconv.Atoi(p)
	if err != nil {
		return 0, fmt.Errorf("parse port %q: %w", p, err)
	}
	return port, nil
}

// ShareLink formats the sketch3d:// link clients use to reach host:port.
func ShareLink(host string, port int) string {
	return config.CustomURLScheme + net.JoinHostPort(host, strconv.Itoa(port))
}
