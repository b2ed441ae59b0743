package config

import (
	"encoding/binary"
	"fmt"
	"net"
)

// CIDRSubnet calculates a subnet address given a network address, a netmask
// size increase, and a subnet number. Subnets produced for distinct netnum
// values never overlap and are always contained in the parent prefix.
//
// Parameters:
//   - prefix: the network prefix (e.g., "10.0.0.0/16")
//   - newbits: the number of additional bits to add to the prefix length
//     (e.g., 8 for /24 inside /16)
//   - netnum: the zero-based index of the subnet to calculate
//
// Only IPv4 prefixes are supported.
func CIDRSubnet(prefix string, newbits int, netnum int) (string, error) {
	_, network, err := net.ParseCIDR(prefix)
	if err != nil {
		return "", fmt.Errorf("invalid CIDR prefix: %w", err)
	}

	if network.IP.To4() == nil {
		return "", fmt.Errorf("only IPv4 prefixes are supported, got %s", prefix)
	}

	if newbits <= 0 {
		return "", fmt.Errorf("prefix extension must be positive, got %d", newbits)
	}
	if netnum < 0 {
		return "", fmt.Errorf("subnet number must be non-negative, got %d", netnum)
	}

	maskSize, totalBits := network.Mask.Size()
	newMaskSize := maskSize + newbits

	if newMaskSize > totalBits {
		return "", fmt.Errorf("prefix extension of %d bits is too large for %s", newbits, prefix)
	}

	maxSubnets := 1 << newbits
	if netnum >= maxSubnets {
		return "", fmt.Errorf("subnet number %d exceeds max subnets %d", netnum, maxSubnets)
	}

	ip := network.IP.To4()
	ipInt := uint64(binary.BigEndian.Uint32(ip))

	subnetSize := 1 << (totalBits - newMaskSize)
	// #nosec G115
	ipInt += uint64(netnum * subnetSize)

	newIP := make(net.IP, 4)
	// #nosec G115
	binary.BigEndian.PutUint32(newIP, uint32(ipInt))

	return fmt.Sprintf("%s/%d", newIP.String(), newMaskSize), nil
}
