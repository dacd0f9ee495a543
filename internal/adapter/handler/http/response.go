package http

import (
	"time"

	"github.com/MikeRez0/shoptrack/internal/core/domain"
)

type userResponse struct {
	ID           uint64      `json:"id"`
	Email        string      `json:"email"`
	Name         string      `json:"name"`
	LastName     string      `json:"last_name"`
	HomeAddress  string      `json:"home_address"`
	PhoneNumber  string      `json:"phone_number"`
	Capabilities []string    `json:"capabilities"`
	AgentProfit  jsonDecimal `json:"agent_profit"`
	IsActive     bool        `json:"is_active"`
	IsVerified   bool        `json:"is_verified"`
	DateJoined   time.Time   `json:"date_joined"`
}

func newUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		LastName:     u.LastName,
		HomeAddress:  u.HomeAddress,
		PhoneNumber:  u.PhoneNumber,
		Capabilities: u.Capabilities.Names(),
		AgentProfit:  jsonDecimal(u.AgentProfit),
		IsActive:     u.IsActive,
		IsVerified:   u.IsVerified,
		DateJoined:   u.DateJoined,
	}
}

type shopResponse struct {
	Name string `json:"name"`
	Link string `json:"link"`
}

type buyingAccountResponse struct {
	ID          uint64 `json:"id"`
	AccountName string `json:"account_name"`
}

type ratesResponse struct {
	ChangeRate   jsonDecimal `json:"change_rate"`
	CostPerPound jsonDecimal `json:"cost_per_pound"`
}

type imageResponse struct {
	PublicID string `json:"public_id"`
	URL      string `json:"image_url"`
}

type productResponse struct {
	ID               uint64      `json:"id"`
	OrderID          uint64      `json:"order"`
	ShopName         string      `json:"shop"`
	SKU              string      `json:"sku"`
	Name             string      `json:"name"`
	Link             string      `json:"link"`
	Description      string      `json:"description"`
	Observation      string      `json:"observation"`
	Category         string      `json:"category"`
	Picture          string      `json:"product_pictures"`
	AmountRequested  int64       `json:"amount_requested"`
	ShopCost         jsonDecimal `json:"shop_cost"`
	ShopDeliveryCost jsonDecimal `json:"shop_delivery_cost"`
	ShopTaxes        jsonDecimal `json:"shop_taxes"`
	OwnTaxes         jsonDecimal `json:"own_taxes"`
	AddedTaxes       jsonDecimal `json:"added_taxes"`
	TotalCost        jsonDecimal `json:"total_cost"`
	Status           string      `json:"status"`
	CostPerProduct   jsonDecimal `json:"cost_per_product"`
	AmountBuyed      int64       `json:"amount_buyed"`
	AmountReceived   int64       `json:"amount_received"`
	AmountDelivered  int64       `json:"amount_delivered"`
}

func newProductResponse(r *domain.ProductReport) productResponse {
	p := r.Product
	return productResponse{
		ID:               p.ID,
		OrderID:          p.OrderID,
		ShopName:         p.ShopName,
		SKU:              p.SKU,
		Name:             p.Name,
		Link:             p.Link,
		Description:      p.Description,
		Observation:      p.Observation,
		Category:         p.Category,
		Picture:          p.Picture,
		AmountRequested:  p.AmountRequested,
		ShopCost:         jsonDecimal(p.ShopCost),
		ShopDeliveryCost: jsonDecimal(p.ShopDeliveryCost),
		ShopTaxes:        jsonDecimal(p.ShopTaxes),
		OwnTaxes:         jsonDecimal(p.OwnTaxes),
		AddedTaxes:       jsonDecimal(p.AddedTaxes),
		TotalCost:        jsonDecimal(p.TotalCost),
		Status:           string(p.Status),
		CostPerProduct:   jsonDecimal(r.CostPerProduct),
		AmountBuyed:      r.AmountBuyed,
		AmountReceived:   r.AmountReceived,
		AmountDelivered:  r.AmountDelivered,
	}
}

type orderProductResponse struct {
	ID              uint64      `json:"id"`
	Name            string      `json:"name"`
	Status          string      `json:"status"`
	AmountRequested int64       `json:"amount_requested"`
	TotalCost       jsonDecimal `json:"total_cost"`
}

type orderResponse struct {
	ID                    uint64                 `json:"id"`
	ClientID              uint64                 `json:"client"`
	ClientEmail           string                 `json:"client_email,omitempty"`
	SalesManagerID        uint64                 `json:"sales_manager"`
	Status                string                 `json:"status"`
	PayStatus             string                 `json:"pay_status"`
	CreatedAt             time.Time              `json:"created_at"`
	Products              []orderProductResponse `json:"products"`
	DeliverReceips        []uint64               `json:"deliver_receips"`
	TotalCost             jsonDecimal            `json:"total_cost"`
	ReceivedValueOfClient jsonDecimal            `json:"received_value_of_client"`
	ExtraPayments         jsonDecimal            `json:"extra_payments"`
	ReceivedProducts      int64                  `json:"received_products"`
}

func newOrderResponse(r *domain.OrderReport) orderResponse {
	o := r.Order
	resp := orderResponse{
		ID:                    o.ID,
		ClientID:              o.ClientID,
		SalesManagerID:        o.SalesManagerID,
		Status:                o.Status,
		PayStatus:             o.PayStatus,
		CreatedAt:             o.CreatedAt,
		Products:              make([]orderProductResponse, 0, len(o.Products)),
		DeliverReceips:        make([]uint64, 0, len(o.DeliverReceips)),
		TotalCost:             jsonDecimal(r.TotalCost),
		ReceivedValueOfClient: jsonDecimal(r.ReceivedValueOfClient),
		ExtraPayments:         jsonDecimal(r.ExtraPayments),
		ReceivedProducts:      r.ReceivedProducts,
	}
	if o.Client != nil {
		resp.ClientEmail = o.Client.Email
	}
	for _, p := range o.Products {
		resp.Products = append(resp.Products, orderProductResponse{
			ID:              p.ID,
			Name:            p.Name,
			Status:          string(p.Status),
			AmountRequested: p.AmountRequested,
			TotalCost:       jsonDecimal(p.TotalCost),
		})
	}
	for _, d := range o.DeliverReceips {
		resp.DeliverReceips = append(resp.DeliverReceips, d.ID)
	}
	return resp
}

type productBuyedResponse struct {
	ID               uint64      `json:"id"`
	ProductID        uint64      `json:"original_product"`
	ShoppingReceipID uint64      `json:"shoping_receip"`
	AmountBuyed      int64       `json:"amount_buyed"`
	ActualCost       jsonDecimal `json:"actual_cost_of_product"`
	ShopDiscount     jsonDecimal `json:"shop_discount"`
	OfferDiscount    jsonDecimal `json:"offer_discount"`
	RealCost         jsonDecimal `json:"real_cost_of_product"`
	BuyDate          time.Time   `json:"buy_date"`
	Observation      string      `json:"observation"`
}

type shoppingReceipResponse struct {
	ID                  uint64                 `json:"id"`
	BuyingAccountID     uint64                 `json:"shopping_account"`
	ShopName            string                 `json:"shop_of_buy"`
	Status              string                 `json:"status_of_shopping"`
	BuyDate             time.Time              `json:"buy_date"`
	Products            []productBuyedResponse `json:"buyed_products"`
	TotalCostOfShopping jsonDecimal            `json:"total_cost_of_shopping"`
}

func newShoppingReceipResponse(r *domain.ShoppingReport) shoppingReceipResponse {
	sr := r.ShoppingReceip
	resp := shoppingReceipResponse{
		ID:                  sr.ID,
		BuyingAccountID:     sr.BuyingAccountID,
		ShopName:            sr.ShopName,
		Status:              sr.Status,
		BuyDate:             sr.BuyDate,
		Products:            make([]productBuyedResponse, 0, len(sr.Products)),
		TotalCostOfShopping: jsonDecimal(r.TotalCostOfShopping),
	}
	for _, b := range sr.Products {
		resp.Products = append(resp.Products, productBuyedResponse{
			ID:               b.ID,
			ProductID:        b.ProductID,
			ShoppingReceipID: b.ShoppingReceipID,
			AmountBuyed:      b.AmountBuyed,
			ActualCost:       jsonDecimal(b.ActualCost),
			ShopDiscount:     jsonDecimal(b.ShopDiscount),
			OfferDiscount:    jsonDecimal(b.OfferDiscount),
			RealCost:         jsonDecimal(b.RealCost),
			BuyDate:          b.BuyDate,
			Observation:      b.Observation,
		})
	}
	return resp
}

type productReceivedResponse struct {
	ID              uint64    `json:"id"`
	ProductID       uint64    `json:"original_product"`
	PackageID       uint64    `json:"package_where_was_send"`
	DeliverReceipID *uint64   `json:"deliver_receip"`
	AmountReceived  int64     `json:"amount_received"`
	AmountDelivered int64     `json:"amount_delivered"`
	Observation     string    `json:"observation"`
	ReceptionDate   time.Time `json:"reception_date_in_xzona"`
}

func newProductReceivedResponses(list []*domain.ProductReceived) []productReceivedResponse {
	out := make([]productReceivedResponse, 0, len(list))
	for _, pr := range list {
		out = append(out, productReceivedResponse{
			ID:              pr.ID,
			ProductID:       pr.ProductID,
			PackageID:       pr.PackageID,
			DeliverReceipID: pr.DeliverReceipID,
			AmountReceived:  pr.AmountReceived,
			AmountDelivered: pr.AmountDelivered,
			Observation:     pr.Observation,
			ReceptionDate:   pr.ReceptionDate,
		})
	}
	return out
}

type packageResponse struct {
	ID             uint64                    `json:"id"`
	AgencyName     string                    `json:"agency_name"`
	TrackingNumber string                    `json:"number_of_tracking"`
	Status         string                    `json:"status_of_processing"`
	ArrivalDate    time.Time                 `json:"arrival_date"`
	Products       []productReceivedResponse `json:"contained_products"`
}

func newPackageResponse(p *domain.Package) packageResponse {
	return packageResponse{
		ID:             p.ID,
		AgencyName:     p.AgencyName,
		TrackingNumber: p.TrackingNumber,
		Status:         p.Status,
		ArrivalDate:    p.ArrivalDate,
		Products:       newProductReceivedResponses(p.Products),
	}
}

type deliverReceipResponse struct {
	ID                 uint64                    `json:"id"`
	OrderID            uint64                    `json:"order"`
	Weight             jsonDecimal               `json:"weight"`
	Status             string                    `json:"status_of_delivery"`
	DeliverDate        time.Time                 `json:"deliver_date"`
	Picture            string                    `json:"deliver_picture"`
	Products           []productReceivedResponse `json:"delivered_products"`
	TotalCostOfDeliver jsonDecimal               `json:"total_cost_of_deliver"`
}

func newDeliverReceipResponse(r *domain.DeliverReport) deliverReceipResponse {
	d := r.DeliverReceip
	return deliverReceipResponse{
		ID:                 d.ID,
		OrderID:            d.OrderID,
		Weight:             jsonDecimal(d.Weight),
		Status:             d.Status,
		DeliverDate:        d.DeliverDate,
		Picture:            d.Picture,
		Products:           newProductReceivedResponses(d.Products),
		TotalCostOfDeliver: jsonDecimal(r.TotalCostOfDeliver),
	}
}

func mapList[T, R any](list []T, conv func(T) R) []R {
	out := make([]R, 0, len(list))
	for _, item := range list {
		out = append(out, conv(item))
	}
	return out
}
