package fortune

import (
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"
)

const luckyNumberCount = 8

var messages = struct {
	highLuck   string
	impressive string
	normal     string
}{
	highLuck:   "Today the cookie gods smile on you. Spend your luck while it lasts!",
	impressive: "Impressive luck! Fortunes like this one come around once in a blue moon.",
	normal:     "A fairly normal day ahead. Keep the cookies coming.",
}

// Generator produces cosmetic fortune messages for correct answers. It holds
// no state beyond its random source and is safe for concurrent use.
type Generator struct {
	mu sync.Mutex
	r  *rand.Rand
}

func NewGenerator() *Generator {
	return NewGeneratorWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewGeneratorWithSource lets tests pin the random source.
func NewGeneratorWithSource(src rand.Source) *Generator {
	return &Generator{r: rand.New(src)}
}

// Message draws one fortune. Roughly 10% high luck, 5% impressive luck, 49%
// fairly normal, and the rest a string of lucky numbers.
func (g *Generator) Message() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch roll := g.r.Intn(100); {
	case roll < 10:
		return messages.highLuck
	case roll < 15:
		return messages.impressive
	case roll < 64:
		return messages.normal
	default:
		nums := make([]string, luckyNumberCount)
		for i := range nums {
			nums[i] = strconv.Itoa(g.r.Intn(101))
		}
		return "Your lucky numbers are " + strings.Join(nums, "-")
	}
}
