package view

type HistoryItem struct {
	Name      string `json:"item_name"`
	Quantity  int    `json:"quantity"`
	PriceEach string `json:"price_per_item"`
}

// HistoryRow is one past order on the history screen.
type HistoryRow struct {
	ID         string        `json:"order_id"`
	Date       string        `json:"date"`
	Status     string        `json:"status"`
	Total      string        `json:"total"`
	Items      []HistoryItem `json:"items"`
	AssignedTo *Courier      `json:"assigned_to,omitempty"`
	Earnings   string        `json:"earnings,omitempty"` // partner history only
}

// DashboardPage groups a delivery partner's orders into the three columns
// of the dashboard screen.
type DashboardPage struct {
	New       []TrackedOrder `json:"new_orders"`
	Pending   []TrackedOrder `json:"pending_orders"`
	Completed []HistoryRow   `json:"completed_orders"`
}

type Address struct {
	ID      int    `json:"id"`
	Address string `json:"address"`
}

type AddressBook struct {
	Name      string    `json:"name"`
	Phone     string    `json:"phone_number"`
	Addresses []Address `json:"addresses"`
}
