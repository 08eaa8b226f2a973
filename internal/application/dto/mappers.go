package dto

import (
	"strconv"

	"github.com/jhoicas/elbaul-api/internal/domain/entity"
)

// FromUser convierte la entidad a su salida pública.
func FromUser(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Address:   u.Address,
		Phone:     u.Phone,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

func FromCategory(c *entity.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description, Active: c.Active}
}

func FromProduct(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Condition:   p.Condition,
		Stock:       p.Stock,
		Brand:       p.Brand,
		Model:       p.Model,
		CategoryID:  p.CategoryID,
		Active:      p.Active,
		Featured:    p.Featured,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func FromInventory(i *entity.Inventory) *InventoryResponse {
	if i == nil {
		return nil
	}
	return &InventoryResponse{
		ID:        i.ID,
		ProductID: i.ProductID,
		Available: i.Available,
		Reserved:  i.Reserved,
		Location:  i.Location,
		UpdatedAt: i.UpdatedAt,
	}
}

func FromCart(c *entity.Cart) *CartResponse {
	if c == nil {
		return nil
	}
	return &CartResponse{ID: c.ID, UserID: c.UserID, Status: c.Status, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

func FromCartItem(it *entity.CartItem) CartItemResponse {
	return CartItemResponse{
		ID:        it.ID,
		CartID:    it.CartID,
		ProductID: it.ProductID,
		Quantity:  it.Quantity,
		UnitPrice: it.UnitPrice,
		Subtotal:  it.Subtotal,
	}
}

func FromOrder(o *entity.Order) OrderResponse {
	return OrderResponse{
		ID:              o.ID,
		UserID:          o.UserID,
		OrderedAt:       o.OrderedAt,
		Total:           o.Total,
		Status:          o.Status,
		PaymentMethod:   o.PaymentMethod,
		ShippingAddress: o.ShippingAddress,
		Notes:           o.Notes,
		ReceiptNumber:   o.ReceiptNumber,
	}
}

func FromPayment(p *entity.Payment) *PaymentResponse {
	if p == nil {
		return nil
	}
	return &PaymentResponse{
		ID:              p.ID,
		OrderID:         p.OrderID,
		Amount:          p.Amount,
		Method:          p.Method,
		PaidAt:          p.PaidAt,
		Status:          p.Status,
		TransactionCode: p.TransactionCode,
	}
}

func FromShipment(s *entity.Shipment) ShipmentResponse {
	return ShipmentResponse{
		ID:             s.ID,
		OrderID:        s.OrderID,
		Carrier:        s.Carrier,
		TrackingNumber: s.TrackingNumber,
		ShippedAt:      s.ShippedAt,
		EstimatedAt:    s.EstimatedAt,
		Status:         s.Status,
		Cost:           s.Cost,
	}
}

func FromReturn(r *entity.ReturnRequest) ReturnResponse {
	return ReturnResponse{
		ID:           r.ID,
		OrderID:      r.OrderID,
		ProductID:    r.ProductID,
		Reason:       r.Reason,
		Status:       r.Status,
		RequestedAt:  r.RequestedAt,
		RefundAmount: r.RefundAmount,
	}
}

func FromReview(r *entity.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		ProductID: r.ProductID,
		UserID:    r.UserID,
		UserName:  r.UserName,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
		Approved:  r.Approved,
	}
}

// FromReviewStats redondea el promedio a un decimal y expone la distribución 1..5.
func FromReviewStats(s *entity.ReviewStats) ReviewStatsResponse {
	out := ReviewStatsResponse{Distribution: map[string]int{}}
	for r := entity.MinRating; r <= entity.MaxRating; r++ {
		out.Distribution[strconv.Itoa(r)] = 0
	}
	if s == nil {
		return out
	}
	out.Total = s.Total
	out.Average = float64(int(s.Average*10+0.5)) / 10
	for r, n := range s.Distribution {
		out.Distribution[strconv.Itoa(r)] = n
	}
	return out
}

func FromReactionCounts(in []entity.ReactionCount) []ReactionCountResponse {
	out := make([]ReactionCountResponse, 0, len(in))
	for _, rc := range in {
		out = append(out, ReactionCountResponse{Type: rc.Type, Count: rc.Count})
	}
	return out
}

// FromPost deja Reactions vacío; lo completa el caso de uso.
func FromPost(p *entity.Post) PostResponse {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return PostResponse{
		ID:           p.ID,
		UserID:       p.UserID,
		AuthorName:   p.AuthorName,
		Content:      p.Content,
		Images:       images,
		ProductID:    p.ProductID,
		ProductTitle: p.ProductTitle,
		Likes:        p.Likes,
		CommentCount: p.CommentCount,
		Reactions:    []ReactionCountResponse{},
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func FromComment(c *entity.Comment) CommentResponse {
	return CommentResponse{
		ID:         c.ID,
		PostID:     c.PostID,
		UserID:     c.UserID,
		AuthorName: c.AuthorName,
		Content:    c.Content,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func FromReaction(r *entity.Reaction) ReactionResponse {
	return ReactionResponse{
		ID:         r.ID,
		Type:       r.Type,
		TargetKind: r.TargetKind,
		TargetID:   r.TargetID,
		CreatedAt:  r.CreatedAt,
	}
}
