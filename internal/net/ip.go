package net

import (
	"log"
	"net"
)

// LocalIP picks the address other machines on the LAN most likely reach this host
// on. Dialing UDP sends nothing; it only asks the kernel which source address the
// default route would use. Without a route the first non-loopback IPv4 interface
// address wins, and loopback is the last resort.
func LocalIP() net.IP {
	if conn, err := net.Dial("udp", "8.8.8.8:80"); err == nil {
		defer conn.Close()
		return conn.LocalAddr().(*net.UDPAddr).IP
	}

	addrs, err := net.InterfaceAddrs()
	if err != nil {
		log.Printf("[NET] interface addresses: %v", err)
		return net.IPv4(127, 0, 0, 1)
	}
	if ip := firstLANAddr(addrs); ip != nil {
		return ip
	}
	log.Println("[NET] no LAN address found, using loopback")
	return net.IPv4(127, 0, 0, 1)
}

func firstLANAddr(addrs []net.Addr) net.IP {
	for _, a := range addrs {
		ipnet, ok := a.(*net.IPNet)
		if !ok || ipnet.IP.IsLoopback() {
			continue
		}
		if v4 := ipnet.IP.To4(); v4 != nil {
			return v4
		}
	}
	return nil
}
