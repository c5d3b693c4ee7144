package order

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/gocql/gocql"

	"novashop_back_end/internal/database"
	"novashop_back_end/internal/models"
)

const selectOrderColumns = `order_id, user_id, items, shipping_address, payment_info,
	items_price, shipping_price, tax_price, total_price,
	status, shipping_status, tracking_number, is_paid, paid_at, delivered_at, created_at`

// orderRow porte les colonnes JSON avant décodage
type orderRow struct {
	items           string
	shippingAddress string
	paymentInfo     string
	paidAt          time.Time
	deliveredAt     time.Time
}

func orderScanArgs(o *models.Order, row *orderRow) []interface{} {
	return []interface{}{
		&o.ID, &o.UserID, &row.items, &row.shippingAddress, &row.paymentInfo,
		&o.Prices.ItemsPrice, &o.Prices.ShippingPrice, &o.Prices.TaxPrice, &o.Prices.TotalPrice,
		&o.Status, &o.ShippingStatus, &o.TrackingNumber, &o.IsPaid, &row.paidAt, &row.deliveredAt, &o.CreatedAt,
	}
}

func decodeOrderRow(o *models.Order, row *orderRow) {
	_ = json.Unmarshal([]byte(row.items), &o.Items)
	_ = json.Unmarshal([]byte(row.shippingAddress), &o.ShippingAddress)
	_ = json.Unmarshal([]byte(row.paymentInfo), &o.PaymentInfo)
	if !row.paidAt.IsZero() {
		t := row.paidAt
		o.PaidAt = &t
	}
	if !row.deliveredAt.IsZero() {
		t := row.deliveredAt
		o.DeliveredAt = &t
	}
}

func collectOrders(iter *gocql.Iter) ([]models.Order, error) {
	var orders []models.Order
	for {
		var o models.Order
		var row orderRow
		if !iter.Scan(orderScanArgs(&o, &row)...) {
			break
		}
		decodeOrderRow(&o, &row)
		orders = append(orders, o)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return orders, nil
}

func loadOrder(orderID string) (models.Order, bool, error) {
	var o models.Order
	session, err := database.GetOrdersSession()
	if err != nil {
		return o, false, err
	}

	uid, err := gocql.ParseUUID(orderID)
	if err != nil {
		return o, false, nil
	}

	var row orderRow
	q := session.Query(`SELECT `+selectOrderColumns+` FROM orders WHERE order_id = ?`, uid)
	if err := q.Scan(orderScanArgs(&o, &row)...); err != nil {
		if err == gocql.ErrNotFound {
			return o, false, nil
		}
		return o, false, err
	}
	decodeOrderRow(&o, &row)
	return o, true, nil
}

func persistOrder(o models.Order) error {
	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}

	itemsJSON, _ := json.Marshal(o.Items)
	addressJSON, _ := json.Marshal(o.ShippingAddress)
	paymentJSON, _ := json.Marshal(o.PaymentInfo)

	var paidAt, deliveredAt time.Time
	if o.PaidAt != nil {
		paidAt = *o.PaidAt
	}
	if o.DeliveredAt != nil {
		deliveredAt = *o.DeliveredAt
	}

	return session.Query(`INSERT INTO orders (order_id, user_id, items, shipping_address, payment_info,
			items_price, shipping_price, tax_price, total_price,
			status, shipping_status, tracking_number, is_paid, paid_at, delivered_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.UserID, string(itemsJSON), string(addressJSON), string(paymentJSON),
		o.Prices.ItemsPrice, o.Prices.ShippingPrice, o.Prices.TaxPrice, o.Prices.TotalPrice,
		o.Status, o.ShippingStatus, o.TrackingNumber, o.IsPaid, paidAt, deliveredAt, o.CreatedAt).Exec()
}

// sortNewestFirst trie les commandes par date de création décroissante.
func sortNewestFirst(orders []models.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}
