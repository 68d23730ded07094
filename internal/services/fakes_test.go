package services

import (
	"errors"

	"retail_pos/internal/models"
	"retail_pos/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository fakes used across the service tests.

type fakeBillRepo struct {
	bills  map[uint]*models.Bill
	nextID uint
	failOn string
}

func newFakeBillRepo() *fakeBillRepo {
	return &fakeBillRepo{bills: make(map[uint]*models.Bill), nextID: 1}
}

func (r *fakeBillRepo) fail(op string) error {
	if r.failOn == op {
		return errors.New("repository failure")
	}
	return nil
}

func (r *fakeBillRepo) GetByUserID(userID uint) (*models.Bill, error) {
	for _, bill := range r.bills {
		if bill.UserID == userID {
			return bill, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeBillRepo) GetOrCreate(userID uint) (*models.Bill, error) {
	if bill, err := r.GetByUserID(userID); err == nil {
		return bill, nil
	}
	bill := &models.Bill{ID: r.nextID, UserID: userID}
	r.nextID++
	r.bills[bill.ID] = bill
	return bill, nil
}

func (r *fakeBillRepo) GetItem(billID, productID uint, color string) (*models.BillItem, error) {
	bill, ok := r.bills[billID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	for i := range bill.Items {
		if bill.Items[i].ProductID == productID && bill.Items[i].Color == color {
			return &bill.Items[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeBillRepo) CreateItem(item *models.BillItem) error {
	if err := r.fail("CreateItem"); err != nil {
		return err
	}
	bill := r.bills[item.BillID]
	item.ID = uint(len(bill.Items) + 1)
	bill.Items = append(bill.Items, *item)
	return nil
}

func (r *fakeBillRepo) UpdateItem(item *models.BillItem) error {
	if err := r.fail("UpdateItem"); err != nil {
		return err
	}
	bill := r.bills[item.BillID]
	for i := range bill.Items {
		if bill.Items[i].ProductID == item.ProductID && bill.Items[i].Color == item.Color {
			bill.Items[i] = *item
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeBillRepo) RemoveItem(billID, productID uint, color string) (int64, error) {
	bill, ok := r.bills[billID]
	if !ok {
		return 0, nil
	}
	for i := range bill.Items {
		if bill.Items[i].ProductID == productID && bill.Items[i].Color == color {
			bill.Items = append(bill.Items[:i], bill.Items[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *fakeBillRepo) ClearItems(billID uint) error {
	if bill, ok := r.bills[billID]; ok {
		bill.Items = nil
	}
	return nil
}

type fakeProductRepo struct {
	products      map[uint]*models.Product
	searchResults []models.Product
	searchQueries []string
}

func newFakeProductRepo(products ...*models.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[uint]*models.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(product *models.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) GetByID(id uint) (*models.Product, error) {
	if p, ok := r.products[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProductRepo) GetAll() ([]models.Product, error) {
	out := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeProductRepo) GetPaginated(page, limit int) ([]models.Product, int64, error) {
	all, _ := r.GetAll()
	return all, int64(len(all)), nil
}

func (r *fakeProductRepo) Search(query string) ([]models.Product, error) {
	r.searchQueries = append(r.searchQueries, query)
	return r.searchResults, nil
}

func (r *fakeProductRepo) Update(product *models.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) Delete(id uint) error {
	delete(r.products, id)
	return nil
}

type fakeOrderRepo struct {
	orders     map[uint]*models.Order
	bills      *fakeBillRepo
	nextNumber int64
	createErr  error
}

func newFakeOrderRepo(bills *fakeBillRepo) *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uint]*models.Order), bills: bills, nextNumber: 1000}
}

func (r *fakeOrderRepo) CreateFromBill(order *models.Order, billID uint) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextNumber++
	order.ID = uint(len(r.orders) + 1)
	order.OrderNumber = r.nextNumber
	r.orders[order.ID] = order
	if r.bills != nil {
		r.bills.ClearItems(billID)
	}
	return nil
}

func (r *fakeOrderRepo) GetByID(id uint) (*models.Order, error) {
	if o, ok := r.orders[id]; ok {
		copied := *o
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeOrderRepo) GetPaginated(page, limit int, status string) ([]models.Order, int64, error) {
	out := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		if status == "" || string(o.Status) == status {
			out = append(out, *o)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) UpdateStatus(id uint, from, to models.OrderStatus) (int64, error) {
	o, ok := r.orders[id]
	if !ok || o.Status != from {
		return 0, nil
	}
	o.Status = to
	return 1, nil
}

func (r *fakeOrderRepo) GetStats() (*repository.OrderStats, error) {
	stats := &repository.OrderStats{ByStatus: make(map[models.OrderStatus]int64)}
	for _, o := range r.orders {
		stats.TotalOrders++
		stats.ByStatus[o.Status]++
		if o.Status != models.OrderStatusCancelled && o.Status != models.OrderStatusReturn {
			stats.TotalRevenue += o.TotalAmount
		}
	}
	return stats, nil
}

type fakeNotifier struct {
	created       []models.Order
	statusChanged []models.Order
}

func (n *fakeNotifier) OrderCreated(order models.Order) { n.created = append(n.created, order) }
func (n *fakeNotifier) OrderStatusChanged(order models.Order) {
	n.statusChanged = append(n.statusChanged, order)
}

type fakeIncomingRepo struct {
	orders   map[uint]*models.IncomingOrder
	comments []models.IncomingOrderComment
}

func newFakeIncomingRepo(orders ...*models.IncomingOrder) *fakeIncomingRepo {
	r := &fakeIncomingRepo{orders: make(map[uint]*models.IncomingOrder)}
	for _, o := range orders {
		r.orders[o.ID] = o
	}
	return r
}

func (r *fakeIncomingRepo) Create(order *models.IncomingOrder) error {
	order.ID = uint(len(r.orders) + 1)
	r.orders[order.ID] = order
	return nil
}

func (r *fakeIncomingRepo) GetByID(id uint) (*models.IncomingOrder, error) {
	if o, ok := r.orders[id]; ok {
		copied := *o
		copied.ProductDetails = append([]models.IncomingOrderItem(nil), o.ProductDetails...)
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeIncomingRepo) GetPaginated(page, limit int, vendorID uint) ([]models.IncomingOrder, int64, error) {
	out := make([]models.IncomingOrder, 0, len(r.orders))
	for _, o := range r.orders {
		if vendorID == 0 || o.VendorID == vendorID {
			out = append(out, *o)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeIncomingRepo) Update(order *models.IncomingOrder) error {
	r.orders[order.ID] = order
	return nil
}

func (r *fakeIncomingRepo) Delete(id uint) error {
	delete(r.orders, id)
	return nil
}

func (r *fakeIncomingRepo) AddComment(comment *models.IncomingOrderComment) error {
	comment.ID = uint(len(r.comments) + 1)
	r.comments = append(r.comments, *comment)
	return nil
}

type fakeCustomerRepo struct {
	customers map[uint]*models.Customer
}

func newFakeCustomerRepo(customers ...*models.Customer) *fakeCustomerRepo {
	r := &fakeCustomerRepo{customers: make(map[uint]*models.Customer)}
	for _, c := range customers {
		r.customers[c.ID] = c
	}
	return r
}

func (r *fakeCustomerRepo) Create(customer *models.Customer) error {
	customer.ID = uint(len(r.customers) + 1)
	r.customers[customer.ID] = customer
	return nil
}

func (r *fakeCustomerRepo) GetByID(id uint) (*models.Customer, error) {
	if c, ok := r.customers[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCustomerRepo) GetByPhone(phone string) (*models.Customer, error) {
	for _, c := range r.customers {
		if c.Phone == phone {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCustomerRepo) GetPaginated(page, limit int) ([]models.Customer, int64, error) {
	out := make([]models.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *fakeCustomerRepo) Update(customer *models.Customer) error {
	r.customers[customer.ID] = customer
	return nil
}

func (r *fakeCustomerRepo) Delete(id uint) error {
	delete(r.customers, id)
	return nil
}

// fakeTxnRepo mirrors the exactly-once reversal contract of the real
// repository, including its sentinel errors.
type fakeTxnRepo struct {
	customers *fakeCustomerRepo
	txns      map[uint]*models.Transaction
	nextID    uint
}

func newFakeTxnRepo(customers *fakeCustomerRepo) *fakeTxnRepo {
	return &fakeTxnRepo{customers: customers, txns: make(map[uint]*models.Transaction), nextID: 1}
}

func (r *fakeTxnRepo) CreateWithBalance(txn *models.Transaction) error {
	customer, err := r.customers.GetByID(txn.CustomerID)
	if err != nil {
		return err
	}
	next := customer.CurrentBalance.Add(txn.BalanceDelta())
	if txn.Type == models.TxnCharge && next.GreaterThan(customer.CreditLimit) {
		return repository.ErrCreditLimitExceeded
	}
	txn.ID = r.nextID
	r.nextID++
	r.txns[txn.ID] = txn
	customer.CurrentBalance = next
	return nil
}

func (r *fakeTxnRepo) Reverse(txnID uint, reference string, createdBy uint) (*models.Transaction, error) {
	original, ok := r.txns[txnID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if original.Type == models.TxnReversal {
		return nil, repository.ErrReversalNotAllowed
	}
	if original.IsReversed {
		return nil, repository.ErrAlreadyReversed
	}
	original.IsReversed = true

	reversal := &models.Transaction{
		CustomerID:   original.CustomerID,
		Type:         models.TxnReversal,
		Amount:       original.BalanceDelta().Neg(),
		Reference:    reference,
		ReversalOfID: &original.ID,
		CreatedBy:    createdBy,
	}
	reversal.ID = r.nextID
	r.nextID++
	r.txns[reversal.ID] = reversal

	customer, _ := r.customers.GetByID(original.CustomerID)
	customer.CurrentBalance = customer.CurrentBalance.Add(reversal.BalanceDelta())
	return reversal, nil
}

func (r *fakeTxnRepo) GetByID(id uint) (*models.Transaction, error) {
	if t, ok := r.txns[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeTxnRepo) GetByCustomer(customerID uint) ([]models.Transaction, error) {
	out := make([]models.Transaction, 0)
	for _, t := range r.txns {
		if t.CustomerID == customerID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTxnRepo) ReconcileBalance(customerID uint) (*models.Customer, error) {
	customer, err := r.customers.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	balance := decimal.Zero
	for _, t := range r.txns {
		if t.CustomerID == customerID {
			balance = balance.Add(t.BalanceDelta())
		}
	}
	customer.CurrentBalance = balance
	return customer, nil
}
