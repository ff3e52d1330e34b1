package memory

import (
	"context"
	"sort"

	"github.com/campuscycles/gearbox/pkg/models"
	"github.com/campuscycles/gearbox/pkg/persistence"
)

type customerRepository struct {
	p *Persistence
}

func (r *customerRepository) List(ctx context.Context) ([]*models.Customer, error) {
	r.p.mu.RLock()
	defer r.p.mu.RUnlock()

	customers := make([]*models.Customer, 0, len(r.p.customers))
	for _, customer := range r.p.customers {
		copied := *customer
		customers = append(customers, &copied)
	}

	sort.SliceStable(customers, func(i, j int) bool {
		if customers[i].LastName != customers[j].LastName {
			return customers[i].LastName < customers[j].LastName
		}

		return customers[i].FirstName < customers[j].FirstName
	})

	return customers, nil
}

func (r *customerRepository) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	r.p.mu.RLock()
	defer r.p.mu.RUnlock()

	customer, ok := r.p.customers[id]
	if !ok {
		return nil, nil
	}

	copied := *customer

	return &copied, nil
}

func (r *customerRepository) Save(ctx context.Context, customer *models.Customer) error {
	r.p.mu.Lock()
	defer r.p.mu.Unlock()

	copied := *customer
	r.p.customers[customer.ID] = &copied

	return nil
}

func (r *customerRepository) Delete(ctx context.Context, id string) error {
	r.p.mu.Lock()
	defer r.p.mu.Unlock()

	if _, ok := r.p.customers[id]; !ok {
		return persistence.ErrCustomerNotFound
	}

	delete(r.p.customers, id)

	return nil
}

type bikeRepository struct {
	p *Persistence
}

func (r *bikeRepository) List(ctx context.Context) ([]*models.Bike, error) {
	r.p.mu.RLock()
	defer r.p.mu.RUnlock()

	bikes := make([]*models.Bike, 0, len(r.p.bikes))
	for _, bike := range r.p.bikes {
		copied := *bike
		bikes = append(bikes, &copied)
	}

	sort.SliceStable(bikes, func(i, j int) bool {
		return bikes[i].CreatedAt.After(bikes[j].CreatedAt)
	})

	return bikes, nil
}

func (r *bikeRepository) GetByID(ctx context.Context, id string) (*models.Bike, error) {
	r.p.mu.RLock()
	defer r.p.mu.RUnlock()

	bike, ok := r.p.bikes[id]
	if !ok {
		return nil, nil
	}

	copied := *bike

	return &copied, nil
}

func (r *bikeRepository) Save(ctx context.Context, bike *models.Bike) error {
	r.p.mu.Lock()
	defer r.p.mu.Unlock()

	copied := *bike
	r.p.bikes[bike.ID] = &copied

	return nil
}

func (r *bikeRepository) Delete(ctx context.Context, id string) error {
	r.p.mu.Lock()
	defer r.p.mu.Unlock()

	if _, ok := r.p.bikes[id]; !ok {
		return persistence.ErrBikeNotFound
	}

	delete(r.p.bikes, id)

	return nil
}

type itemRepository struct {
	p *Persistence
}

func (r *itemRepository) List(ctx context.Context) ([]*models.Item, error) {
	r.p.mu.RLock()
	defer r.p.mu.RUnlock()

	items := make([]*models.Item, 0, len(r.p.items))
	for _, item := range r.p.items {
		copied := *item
		items = append(items, &copied)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Name < items[j].Name
	})

	return items, nil
}

func (r *itemRepository) GetByID(ctx context.Context, id string) (*models.Item, error) {
	r.p.mu.RLock()
	defer r.p.mu.RUnlock()

	item, ok := r.p.items[id]
	if !ok {
		return nil, nil
	}

	copied := *item

	return &copied, nil
}

func (r *itemRepository) GetByUPC(ctx context.Context, upc string) (*models.Item, error) {
	r.p.mu.RLock()
	defer r.p.mu.RUnlock()

	for _, item := range r.p.items {
		if item.UPC == upc {
			copied := *item

			return &copied, nil
		}
	}

	return nil, nil
}

func (r *itemRepository) Save(ctx context.Context, item *models.Item) error {
	r.p.mu.Lock()
	defer r.p.mu.Unlock()

	copied := *item
	r.p.items[item.ID] = &copied

	return nil
}

func (r *itemRepository) Delete(ctx context.Context, id string) error {
	r.p.mu.Lock()
	defer r.p.mu.Unlock()

	if _, ok := r.p.items[id]; !ok {
		return persistence.ErrItemNotFound
	}

	delete(r.p.items, id)

	return nil
}

type repairRepository struct {
	p *Persistence
}

func (r *repairRepository) List(ctx context.Context) ([]*models.Repair, error) {
	r.p.mu.RLock()
	defer r.p.mu.RUnlock()

	repairs := make([]*models.Repair, 0, len(r.p.repairs))
	for _, repair := range r.p.repairs {
		copied := *repair
		repairs = append(repairs, &copied)
	}

	sort.SliceStable(repairs, func(i, j int) bool {
		return repairs[i].Name < repairs[j].Name
	})

	return repairs, nil
}

func (r *repairRepository) GetByID(ctx context.Context, id string) (*models.Repair, error) {
	r.p.mu.RLock()
	defer r.p.mu.RUnlock()

	repair, ok := r.p.repairs[id]
	if !ok {
		return nil, nil
	}

	copied := *repair

	return &copied, nil
}

func (r *repairRepository) Save(ctx context.Context, repair *models.Repair) error {
	r.p.mu.Lock()
	defer r.p.mu.Unlock()

	copied := *repair
	r.p.repairs[repair.ID] = &copied

	return nil
}

func (r *repairRepository) Delete(ctx context.Context, id string) error {
	r.p.mu.Lock()
	defer r.p.mu.Unlock()

	if _, ok := r.p.repairs[id]; !ok {
		return persistence.ErrRepairNotFound
	}

	delete(r.p.repairs, id)

	return nil
}

type orderRequestRepository struct {
	p *Persistence
}

func cloneOrderRequest(request *models.OrderRequest) *models.OrderRequest {
	copied := *request

	if request.TransactionID != nil {
		transactionID := *request.TransactionID
		copied.TransactionID = &transactionID
	}

	return &copied
}

func (r *orderRequestRepository) List(ctx context.Context) ([]*models.OrderRequest, error) {
	r.p.mu.RLock()
	defer r.p.mu.RUnlock()

	requests := make([]*models.OrderRequest, 0, len(r.p.orderRequests))
	for _, request := range r.p.orderRequests {
		requests = append(requests, cloneOrderRequest(request))
	}

	sort.SliceStable(requests, func(i, j int) bool {
		return requests[i].CreatedAt.After(requests[j].CreatedAt)
	})

	return requests, nil
}

func (r *orderRequestRepository) GetByID(ctx context.Context, id string) (*models.OrderRequest, error) {
	r.p.mu.RLock()
	defer r.p.mu.RUnlock()

	request, ok := r.p.orderRequests[id]
	if !ok {
		return nil, nil
	}

	return cloneOrderRequest(request), nil
}

func (r *orderRequestRepository) Save(ctx context.Context, request *models.OrderRequest) error {
	r.p.mu.Lock()
	defer r.p.mu.Unlock()

	r.p.orderRequests[request.ID] = cloneOrderRequest(request)

	return nil
}

func (r *orderRequestRepository) Delete(ctx context.Context, id string) error {
	r.p.mu.Lock()
	defer r.p.mu.Unlock()

	if _, ok := r.p.orderRequests[id]; !ok {
		return persistence.ErrOrderRequestNotFound
	}

	delete(r.p.orderRequests, id)

	return nil
}

type userRepository struct {
	p *Persistence
}

func (r *userRepository) List(ctx context.Context) ([]*models.User, error) {
	r.p.mu.RLock()
	defer r.p.mu.RUnlock()

	users := make([]*models.User, 0, len(r.p.users))
	for _, user := range r.p.users {
		copied := *user
		users = append(users, &copied)
	}

	sort.SliceStable(users, func(i, j int) bool {
		return users[i].Username < users[j].Username
	})

	return users, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.p.mu.RLock()
	defer r.p.mu.RUnlock()

	user, ok := r.p.users[id]
	if !ok {
		return nil, nil
	}

	copied := *user

	return &copied, nil
}

func (r *userRepository) Save(ctx context.Context, user *models.User) error {
	r.p.mu.Lock()
	defer r.p.mu.Unlock()

	copied := *user
	r.p.users[user.ID] = &copied

	return nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	r.p.mu.Lock()
	defer r.p.mu.Unlock()

	if _, ok := r.p.users[id]; !ok {
		return persistence.ErrUserNotFound
	}

	delete(r.p.users, id)

	return nil
}
