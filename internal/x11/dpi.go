package x11

import (
	"bufio"
	"math"
	"strconv"
	"strings"

	"github.com/BurntSushi/xgbutil/xprop"
)

const defaultDPI = 96

// DPI reports the Xft.dpi resource from the root RESOURCE_MANAGER property,
// or 96 when it is unset.
func (c *Connection) DPI() int {
	res, err := xprop.PropValStr(xprop.GetProperty(c.XUtil, c.Root, "RESOURCE_MANAGER"))
	if err != nil {
		return defaultDPI
	}
	return parseXftDPI(res)
}

func parseXftDPI(resources string) int {
	sc := bufio.NewScanner(strings.NewReader(resources))
	for sc.Scan() {
		key, val, ok := strings.Cut(sc.Text(), ":")
		if !ok || strings.TrimSpace(key) != "Xft.dpi" {
			continue
		}
		dpi, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil || dpi <= 0 {
			return defaultDPI
		}
		return int(math.Round(dpi))
	}
	return defaultDPI
}
