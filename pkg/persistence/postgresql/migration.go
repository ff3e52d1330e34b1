package postgresql

func migrations() map[int]string {
	return map[int]string{
		1: `
			CREATE TABLE customers (
				id UUID PRIMARY KEY,
				first_name VARCHAR(255) NOT NULL,
				last_name VARCHAR(255) NOT NULL,
				email VARCHAR(255) NOT NULL,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL,
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE INDEX idx_customers_email ON customers(email);

			CREATE TABLE bikes (
				id UUID PRIMARY KEY,
				make VARCHAR(255) NOT NULL,
				model VARCHAR(255) NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				bike_type VARCHAR(100) NOT NULL DEFAULT '',
				size_cm NUMERIC(5,1) NOT NULL DEFAULT 0,
				condition VARCHAR(100) NOT NULL DEFAULT '',
				price NUMERIC(10,2) NOT NULL DEFAULT 0,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL,
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE SEQUENCE transaction_nums START 1;

			CREATE TABLE transactions (
				id UUID PRIMARY KEY,
				transaction_num BIGINT NOT NULL DEFAULT nextval('transaction_nums'),
				customer_id UUID NOT NULL REFERENCES customers(id),
				bike_id UUID REFERENCES bikes(id),
				transaction_type VARCHAR(50) NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				total_cost NUMERIC(10,2) NOT NULL DEFAULT 0,
				is_completed BOOLEAN NOT NULL DEFAULT FALSE,
				is_paid BOOLEAN NOT NULL DEFAULT FALSE,
				is_refurb BOOLEAN NOT NULL DEFAULT FALSE,
				is_urgent BOOLEAN NOT NULL DEFAULT FALSE,
				is_beer_bike BOOLEAN NOT NULL DEFAULT FALSE,
				is_employee BOOLEAN NOT NULL DEFAULT FALSE,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL,
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL,
				date_completed TIMESTAMP WITH TIME ZONE
			);

			CREATE UNIQUE INDEX idx_transactions_num ON transactions(transaction_num);
			CREATE INDEX idx_transactions_customer_id ON transactions(customer_id);
			CREATE INDEX idx_transactions_type ON transactions(transaction_type);
			CREATE INDEX idx_transactions_completed ON transactions(is_completed);

			CREATE TABLE workflow_steps (
				id UUID PRIMARY KEY,
				transaction_id UUID NOT NULL REFERENCES transactions(id) ON DELETE CASCADE,
				workflow_type VARCHAR(50) NOT NULL,
				step_name VARCHAR(100) NOT NULL,
				step_order INT NOT NULL CHECK (step_order > 0),
				is_completed BOOLEAN NOT NULL DEFAULT FALSE,
				created_by VARCHAR(255) NOT NULL,
				completed_by VARCHAR(255),
				created_at TIMESTAMP WITH TIME ZONE NOT NULL,
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL,
				completed_at TIMESTAMP WITH TIME ZONE
			);

			-- The unique index is the initialize-once guard: a second batch
			-- insert for the same pair collides instead of racing past a
			-- pre-check.
			CREATE UNIQUE INDEX idx_workflow_steps_order
				ON workflow_steps(transaction_id, workflow_type, step_order);
			CREATE INDEX idx_workflow_steps_transaction ON workflow_steps(transaction_id);
			CREATE INDEX idx_workflow_steps_completed ON workflow_steps(is_completed);

			CREATE TABLE items (
				id UUID PRIMARY KEY,
				upc VARCHAR(32) NOT NULL,
				name VARCHAR(255) NOT NULL,
				brand VARCHAR(255) NOT NULL DEFAULT '',
				category VARCHAR(255) NOT NULL DEFAULT '',
				standard_price NUMERIC(10,2) NOT NULL DEFAULT 0,
				wholesale_cost NUMERIC(10,2) NOT NULL DEFAULT 0,
				stock INT NOT NULL DEFAULT 0,
				minimum_stock INT NOT NULL DEFAULT 0,
				managed BOOLEAN NOT NULL DEFAULT TRUE,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL,
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE UNIQUE INDEX idx_items_upc ON items(upc);

			CREATE TABLE repairs (
				id UUID PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				price NUMERIC(10,2) NOT NULL DEFAULT 0,
				disabled BOOLEAN NOT NULL DEFAULT FALSE,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL,
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE TABLE order_requests (
				id UUID PRIMARY KEY,
				item_id UUID NOT NULL REFERENCES items(id),
				transaction_id UUID REFERENCES transactions(id) ON DELETE SET NULL,
				quantity INT NOT NULL CHECK (quantity > 0),
				notes TEXT NOT NULL DEFAULT '',
				ordered BOOLEAN NOT NULL DEFAULT FALSE,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL,
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE INDEX idx_order_requests_item ON order_requests(item_id);

			CREATE TABLE users (
				id UUID PRIMARY KEY,
				username VARCHAR(255) NOT NULL,
				firstname VARCHAR(255) NOT NULL,
				lastname VARCHAR(255) NOT NULL,
				role VARCHAR(50) NOT NULL,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL,
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE UNIQUE INDEX idx_users_username ON users(username);
		`,
	}
}
