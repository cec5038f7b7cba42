package domain

// OrderRepository читает и пишет коллекции целиком, без частичных обновлений.
type OrderRepository interface {
	// Orders возвращает все заказы с восстановленными датами.
	Orders() []Order
	// LoadOrders читает заказы перед изменением; ошибка означает, что коллекцию прочитать не удалось.
	LoadOrders() ([]Order, error)
	// Customers возвращает справочник покупателей.
	Customers() []Customer
	// Products возвращает каталог.
	Products() []Product
	// SaveOrders перезаписывает коллекцию заказов.
	SaveOrders(orders []Order) error
	// SaveCustomers перезаписывает справочник покупателей.
	SaveCustomers(customers []Customer) error
	// SaveProducts перезаписывает каталог.
	SaveProducts(products []Product) error
}
