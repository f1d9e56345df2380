package headhunter

import (
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	apiURL    = "https://api.hh.uz"
	userAgent = "spigell/ishmatch (spigelly@gmail.com)"
	// Max value for search per page.
	perPage = "100"

	defaultRequestsPerSecond = 5
	defaultDescribeWorkers   = 4
)

// Client is a read-only client of the HeadHunter vacancies API.
type Client struct {
	token      string
	logger     *zap.Logger
	limiter    *rate.Limiter
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
	// Workers bounds concurrent detail requests in Describe.
	Workers int
}

// New creates a client. The token is optional: vacancy search and details
// are public endpoints.
func New(logger *zap.Logger, token string) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		token:  token,
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger:    logger,
		limiter:   rate.NewLimiter(rate.Limit(defaultRequestsPerSecond), 1),
		UserAgent: userAgent,
		Workers:   defaultDescribeWorkers,
	}
}

// SetRateLimit changes how many requests per second the client makes.
// Zero or negative disables limiting.
func (c *Client) SetRateLimit(perSecond float64) {
	if perSecond <= 0 {
		c.limiter = rate.NewLimiter(rate.Inf, 0)
		return
	}
	c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
}
