package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/saleem-shalabi/Medi-Care-App/internal/domain"
	"github.com/saleem-shalabi/Medi-Care-App/internal/repository"
)

// fakeStore is an in-memory repository.Store. InTx serializes on a mutex
// and rolls the whole state back when fn fails, mirroring the
// transactional semantics the services rely on.
type fakeStore struct {
	mu sync.Mutex

	products    map[int64]domain.Product
	carts       map[int64]domain.CartItem
	orders      map[int64]domain.Order
	orderItems  map[int64]domain.OrderItem
	contracts   map[int64]domain.RentalContract
	payments    map[int64]domain.Payment
	users       map[int64]domain.User
	maintenance map[int64]domain.MaintenanceRequest

	nextID int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:    make(map[int64]domain.Product),
		carts:       make(map[int64]domain.CartItem),
		orders:      make(map[int64]domain.Order),
		orderItems:  make(map[int64]domain.OrderItem),
		contracts:   make(map[int64]domain.RentalContract),
		payments:    make(map[int64]domain.Payment),
		users:       make(map[int64]domain.User),
		maintenance: make(map[int64]domain.MaintenanceRequest),
	}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) repos() repository.Repositories {
	return repository.Repositories{
		Products:    &fakeProductRepo{f},
		Carts:       &fakeCartRepo{f},
		Orders:      &fakeOrderRepo{f},
		Contracts:   &fakeContractRepo{f},
		Payments:    &fakePaymentRepo{f},
		Users:       &fakeUserRepo{f},
		Maintenance: &fakeMaintenanceRepo{f},
		Reports:     &fakeReportRepo{},
	}
}

func (f *fakeStore) Repos() repository.Repositories {
	return f.repos()
}

func (f *fakeStore) InTx(ctx context.Context, fn func(r repository.Repositories) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	snapshot := f.snapshot()
	if err := fn(f.repos()); err != nil {
		f.restore(snapshot)
		return err
	}
	return nil
}

type storeSnapshot struct {
	products    map[int64]domain.Product
	carts       map[int64]domain.CartItem
	orders      map[int64]domain.Order
	orderItems  map[int64]domain.OrderItem
	contracts   map[int64]domain.RentalContract
	payments    map[int64]domain.Payment
	users       map[int64]domain.User
	maintenance map[int64]domain.MaintenanceRequest
	nextID      int64
}

func copyMap[V any](src map[int64]V) map[int64]V {
	dst := make(map[int64]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func (f *fakeStore) snapshot() storeSnapshot {
	return storeSnapshot{
		products:    copyMap(f.products),
		carts:       copyMap(f.carts),
		orders:      copyMap(f.orders),
		orderItems:  copyMap(f.orderItems),
		contracts:   copyMap(f.contracts),
		payments:    copyMap(f.payments),
		users:       copyMap(f.users),
		maintenance: copyMap(f.maintenance),
		nextID:      f.nextID,
	}
}

func (f *fakeStore) restore(s storeSnapshot) {
	f.products = s.products
	f.carts = s.carts
	f.orders = s.orders
	f.orderItems = s.orderItems
	f.contracts = s.contracts
	f.payments = s.payments
	f.users = s.users
	f.maintenance = s.maintenance
	f.nextID = s.nextID
}

// Seed helpers

func (f *fakeStore) addProduct(p domain.Product) int64 {
	if p.ID == 0 {
		p.ID = f.id()
	}
	f.products[p.ID] = p
	return p.ID
}

func (f *fakeStore) addUser(u domain.User) int64 {
	if u.ID == 0 {
		u.ID = f.id()
	}
	f.users[u.ID] = u
	return u.ID
}

func (f *fakeStore) addCartItem(item domain.CartItem) int64 {
	if item.ID == 0 {
		item.ID = f.id()
	}
	f.carts[item.ID] = item
	return item.ID
}

func (f *fakeStore) addContract(c domain.RentalContract) int64 {
	if c.ID == 0 {
		c.ID = f.id()
	}
	f.contracts[c.ID] = c
	return c.ID
}

// Repositories

type fakeProductRepo struct{ f *fakeStore }

func (r *fakeProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	p, ok := r.f.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", domain.ErrProductNotFound, id)
	}
	return &p, nil
}

func (r *fakeProductRepo) AdjustStock(ctx context.Context, productID int64, pool domain.StockPool, delta int32) error {
	p, ok := r.f.products[productID]
	if !ok {
		return fmt.Errorf("%w: id %d", domain.ErrProductNotFound, productID)
	}
	switch pool {
	case domain.StockPoolSale:
		if p.SaleStock+delta < 0 {
			return fmt.Errorf("%w: product %d pool %s", domain.ErrInsufficientStock, productID, pool)
		}
		p.SaleStock += delta
	case domain.StockPoolRent:
		if p.RentStock+delta < 0 {
			return fmt.Errorf("%w: product %d pool %s", domain.ErrInsufficientStock, productID, pool)
		}
		p.RentStock += delta
	}
	r.f.products[productID] = p
	return nil
}

type fakeCartRepo struct{ f *fakeStore }

func (r *fakeCartRepo) Upsert(ctx context.Context, item *domain.CartItem) error {
	for id, existing := range r.f.carts {
		if existing.UserID == item.UserID && existing.ProductID == item.ProductID {
			existing.Quantity += item.Quantity
			r.f.carts[id] = existing
			*item = existing
			return nil
		}
	}
	item.ID = r.f.id()
	r.f.carts[item.ID] = *item
	return nil
}

func (r *fakeCartRepo) UpdateQuantity(ctx context.Context, userID, itemID int64, quantity int32) error {
	item, ok := r.f.carts[itemID]
	if !ok || item.UserID != userID {
		return fmt.Errorf("%w: id %d", domain.ErrCartItemNotFound, itemID)
	}
	item.Quantity = quantity
	r.f.carts[itemID] = item
	return nil
}

func (r *fakeCartRepo) Delete(ctx context.Context, userID, itemID int64) error {
	item, ok := r.f.carts[itemID]
	if !ok || item.UserID != userID {
		return fmt.Errorf("%w: id %d", domain.ErrCartItemNotFound, itemID)
	}
	delete(r.f.carts, itemID)
	return nil
}

func (r *fakeCartRepo) ListByUser(ctx context.Context, userID int64) ([]domain.CartItem, error) {
	var items []domain.CartItem
	for _, item := range r.f.carts {
		if item.UserID == userID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (r *fakeCartRepo) DeleteByUser(ctx context.Context, userID int64) error {
	for id, item := range r.f.carts {
		if item.UserID == userID {
			delete(r.f.carts, id)
		}
	}
	return nil
}

type fakeOrderRepo struct{ f *fakeStore }

func (r *fakeOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	order.ID = r.f.id()
	stored := *order
	stored.Items = nil
	r.f.orders[order.ID] = stored
	return nil
}

func (r *fakeOrderRepo) CreateItem(ctx context.Context, item *domain.OrderItem) error {
	item.ID = r.f.id()
	r.f.orderItems[item.ID] = *item
	return nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	o, ok := r.f.orders[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", domain.ErrOrderNotFound, id)
	}
	return &o, nil
}

func (r *fakeOrderRepo) GetByIDWithItems(ctx context.Context, id int64) (*domain.Order, error) {
	o, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, item := range r.f.orderItems {
		if item.OrderID == id {
			o.Items = append(o.Items, item)
		}
	}
	return o, nil
}

func (r *fakeOrderRepo) GetItem(ctx context.Context, itemID int64) (*domain.OrderItem, error) {
	item, ok := r.f.orderItems[itemID]
	if !ok {
		return nil, fmt.Errorf("%w: order item %d missing", domain.ErrDataInconsistency, itemID)
	}
	return &item, nil
}

func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	o, ok := r.f.orders[id]
	if !ok {
		return fmt.Errorf("%w: id %d", domain.ErrOrderNotFound, id)
	}
	o.Status = status
	o.UpdatedOn = time.Now().UTC()
	r.f.orders[id] = o
	return nil
}

func (r *fakeOrderRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	var orders []domain.Order
	for _, o := range r.f.orders {
		if o.UserID == userID {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func (r *fakeOrderRepo) ListAll(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	for _, o := range r.f.orders {
		orders = append(orders, o)
	}
	return orders, nil
}

type fakeContractRepo struct{ f *fakeStore }

func (r *fakeContractRepo) Create(ctx context.Context, contract *domain.RentalContract) error {
	contract.ID = r.f.id()
	r.f.contracts[contract.ID] = *contract
	return nil
}

func (r *fakeContractRepo) GetByID(ctx context.Context, id int64) (*domain.RentalContract, error) {
	c, ok := r.f.contracts[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", domain.ErrContractNotFound, id)
	}
	return &c, nil
}

func (r *fakeContractRepo) Update(ctx context.Context, contract *domain.RentalContract) error {
	if _, ok := r.f.contracts[contract.ID]; !ok {
		return fmt.Errorf("%w: id %d", domain.ErrContractNotFound, contract.ID)
	}
	contract.UpdatedOn = time.Now().UTC()
	r.f.contracts[contract.ID] = *contract
	return nil
}

func (r *fakeContractRepo) SetDocumentURL(ctx context.Context, id int64, url string) error {
	c, ok := r.f.contracts[id]
	if !ok {
		return fmt.Errorf("%w: id %d", domain.ErrContractNotFound, id)
	}
	c.DocumentURL = &url
	r.f.contracts[id] = c
	return nil
}

func (r *fakeContractRepo) ListByUser(ctx context.Context, userID int64) ([]domain.RentalContract, error) {
	var contracts []domain.RentalContract
	for _, c := range r.f.contracts {
		if c.UserID == userID {
			contracts = append(contracts, c)
		}
	}
	return contracts, nil
}

func (r *fakeContractRepo) ListByOrder(ctx context.Context, orderID int64) ([]domain.RentalContract, error) {
	itemIDs := make(map[int64]bool)
	extendedIDs := make(map[int64]bool)
	for _, item := range r.f.orderItems {
		if item.OrderID != orderID {
			continue
		}
		itemIDs[item.ID] = true
		if item.ExtendedContractID != nil {
			extendedIDs[*item.ExtendedContractID] = true
		}
	}

	var contracts []domain.RentalContract
	for _, c := range r.f.contracts {
		if extendedIDs[c.ID] || (c.OrderItemID != nil && itemIDs[*c.OrderItemID]) {
			contracts = append(contracts, c)
		}
	}
	return contracts, nil
}

func (r *fakeContractRepo) CountOverlapping(ctx context.Context, productID int64, start, end time.Time, excludeContractID int64) (int32, error) {
	var count int32
	for _, c := range r.f.contracts {
		if c.ProductID != productID || c.ID == excludeContractID || c.Status.IsTerminal() {
			continue
		}
		if c.StartDate.Before(end) && c.EndDate.After(start) {
			count++
		}
	}
	return count, nil
}

type fakePaymentRepo struct{ f *fakeStore }

func (r *fakePaymentRepo) Create(ctx context.Context, payment *domain.Payment) error {
	payment.ID = r.f.id()
	payment.CreatedOn = time.Now().UTC()
	r.f.payments[payment.ID] = *payment
	return nil
}

func (r *fakePaymentRepo) ListByOrder(ctx context.Context, orderID int64) ([]domain.Payment, error) {
	var payments []domain.Payment
	for _, p := range r.f.payments {
		if p.OrderID == orderID {
			payments = append(payments, p)
		}
	}
	return payments, nil
}

type fakeUserRepo struct{ f *fakeStore }

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	u, ok := r.f.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", domain.ErrUserNotFound, id)
	}
	return &u, nil
}

type fakeMaintenanceRepo struct{ f *fakeStore }

func (r *fakeMaintenanceRepo) Create(ctx context.Context, req *domain.MaintenanceRequest) error {
	req.ID = r.f.id()
	req.CreatedOn = time.Now().UTC()
	r.f.maintenance[req.ID] = *req
	return nil
}

func (r *fakeMaintenanceRepo) GetByID(ctx context.Context, id int64) (*domain.MaintenanceRequest, error) {
	m, ok := r.f.maintenance[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", domain.ErrRequestNotFound, id)
	}
	return &m, nil
}

func (r *fakeMaintenanceRepo) Update(ctx context.Context, req *domain.MaintenanceRequest) error {
	if _, ok := r.f.maintenance[req.ID]; !ok {
		return fmt.Errorf("%w: id %d", domain.ErrRequestNotFound, req.ID)
	}
	req.UpdatedOn = time.Now().UTC()
	r.f.maintenance[req.ID] = *req
	return nil
}

func (r *fakeMaintenanceRepo) List(ctx context.Context, status domain.MaintenanceStatus, technicianID int64) ([]domain.MaintenanceRequest, error) {
	var requests []domain.MaintenanceRequest
	for _, m := range r.f.maintenance {
		if status != "" && m.Status != status {
			continue
		}
		if technicianID != 0 && (m.TechnicianID == nil || *m.TechnicianID != technicianID) {
			continue
		}
		requests = append(requests, m)
	}
	return requests, nil
}

type fakeReportRepo struct{}

func (r *fakeReportRepo) EarningsReport(ctx context.Context, start, end time.Time) (*domain.EarningsReport, error) {
	return &domain.EarningsReport{PeriodStart: start, PeriodEnd: end}, nil
}

// Collaborator fakes

type fakeEmailService struct {
	mu               sync.Mutex
	orderUpdates     []int64
	confirmations    []int64
	contractUpdates  []int64
	lastDocumentURLs []string
}

func (s *fakeEmailService) SendOrderStatusUpdate(ctx context.Context, to, name string, order *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orderUpdates = append(s.orderUpdates, order.ID)
	return nil
}

func (s *fakeEmailService) SendOrderConfirmation(ctx context.Context, to, name string, order *domain.Order, documentURLs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.confirmations = append(s.confirmations, order.ID)
	s.lastDocumentURLs = documentURLs
	return nil
}

func (s *fakeEmailService) SendContractStatusUpdate(ctx context.Context, to, name string, contract *domain.RentalContract) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contractUpdates = append(s.contractUpdates, contract.ID)
	return nil
}

type fakeDocumentService struct {
	fail bool
}

func (s *fakeDocumentService) GenerateContractDocument(ctx context.Context, user *domain.User, product *domain.Product, contract *domain.RentalContract) (string, error) {
	if s.fail {
		return "", fmt.Errorf("render failed")
	}
	return fmt.Sprintf("http://docs.local/contract-%s.pdf", contract.ContractNumber), nil
}

type fakePublisher struct {
	mu       sync.Mutex
	paid     []int64
	created  []int64
	returned []int64
}

func (p *fakePublisher) PublishOrderPaid(ctx context.Context, order *domain.Order) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paid = append(p.paid, order.ID)
	return nil
}

func (p *fakePublisher) PublishContractCreated(ctx context.Context, contract *domain.RentalContract) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.created = append(p.created, contract.ID)
	return nil
}

func (p *fakePublisher) PublishContractReturned(ctx context.Context, contract *domain.RentalContract) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.returned = append(p.returned, contract.ID)
	return nil
}
