package models

import "time"

// Platform identifies a supported marketplace.
type Platform string

const (
	PlatformShopee     Platform = "shopee"
	PlatformTokopedia  Platform = "tokopedia"
	PlatformTikTokShop Platform = "tiktok_shop"
)

func (p Platform) Valid() bool {
	switch p {
	case PlatformShopee, PlatformTokopedia, PlatformTikTokShop:
		return true
	}
	return false
}

// Platforms lists every supported platform value.
func Platforms() []Platform {
	return []Platform{PlatformShopee, PlatformTokopedia, PlatformTikTokShop}
}

// TaskStatus is the server-side lifecycle state of a scraping task.
// The client only observes it; transitions happen remotely.
type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskRunning   TaskStatus = "running"
	TaskCompleted TaskStatus = "completed"
	TaskFailed    TaskStatus = "failed"
)

// Terminal reports whether the task will not change state again.
func (s TaskStatus) Terminal() bool {
	return s == TaskCompleted || s == TaskFailed
}

// ProductStatus is the listing state of a collected product record.
type ProductStatus string

const (
	ProductActive   ProductStatus = "active"
	ProductInactive ProductStatus = "inactive"
	ProductDeleted  ProductStatus = "deleted"
)

// Role is a user's access level.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleUser       Role = "user"
	RoleEnterprise Role = "enterprise"
)

// Recognized task types. task_type is an open string on the wire; these two
// determine the shape of input_data.
const (
	TaskTypeKeywordSearch = "keyword_search"
	TaskTypeURLScrape     = "url_scrape"
)

// TaskInput builds the input_data payload for a task type: keyword_search
// carries {keyword}, anything else carries {url}.
func TaskInput(taskType, value string) map[string]string {
	if taskType == TaskTypeKeywordSearch {
		return map[string]string{"keyword": value}
	}
	return map[string]string{"url": value}
}

type User struct {
	ID         int64     `json:"id"`
	Email      string    `json:"email"`
	Username   string    `json:"username"`
	FullName   *string   `json:"full_name"`
	Role       Role      `json:"role"`
	IsActive   bool      `json:"is_active"`
	IsVerified bool      `json:"is_verified"`
	AvatarURL  *string   `json:"avatar_url"`
	CreatedAt  time.Time `json:"created_at"`
}

type ScrapingTask struct {
	ID           int64      `json:"id"`
	Platform     Platform   `json:"platform"`
	TaskType     string     `json:"task_type"`
	Status       TaskStatus `json:"status"`
	ResultsCount int        `json:"results_count"`
	CeleryTaskID *string    `json:"celery_task_id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	ErrorMessage *string    `json:"error_message"`
}

type Product struct {
	ID                 int64         `json:"id"`
	Platform           Platform      `json:"platform"`
	ExternalID         string        `json:"external_id"`
	ProductName        string        `json:"product_name"`
	Price              *float64      `json:"price"`
	OriginalPrice      *float64      `json:"original_price"`
	DiscountPercentage *int          `json:"discount_percentage"`
	SoldCount          *int          `json:"sold_count"`
	Rating             *float64      `json:"rating"`
	ReviewCount        *int          `json:"review_count"`
	ShopName           *string       `json:"shop_name"`
	ShopLocation       *string       `json:"shop_location"`
	ProductURL         *string       `json:"product_url"`
	ImageURLs          []string      `json:"image_urls"`
	Description        *string       `json:"description"`
	Category           *string       `json:"category"`
	Status             ProductStatus `json:"status"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

// PriceHistory is one point of a product's append-only price series.
type PriceHistory struct {
	Price              *float64  `json:"price"`
	DiscountPercentage *int      `json:"discount_percentage"`
	SoldCount          *int      `json:"sold_count"`
	Rating             *float64  `json:"rating"`
	RecordedAt         time.Time `json:"recorded_at"`
}
