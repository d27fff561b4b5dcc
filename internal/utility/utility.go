package utility

import (
	"fmt"
	"math/rand"
)

// RandomColorHex returns a random #rrggbb color with each component kept
// away from the extremes so targets stay visible on both backgrounds.
func RandomColorHex() string {
	r := rand.Intn(248) + 4
	g := rand.Intn(248) + 4
	b := rand.Intn(248) + 4
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
