package db

var schema = `
CREATE EXTENSION IF NOT EXISTS "uuid-ossp";

CREATE TABLE IF NOT EXISTS venues (
	venue_id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
	name VARCHAR(255) NOT NULL,
	location VARCHAR(255) NOT NULL,
	timezone VARCHAR(64) NOT NULL DEFAULT 'UTC',
	capacity INT NOT NULL,
	price_amount NUMERIC(10, 2) NOT NULL,
	price_currency CHAR(3) NOT NULL,
	image_ref VARCHAR(512) NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS bookings (
	booking_id UUID PRIMARY KEY,
	organizer_id UUID NOT NULL,
	venue_id UUID NOT NULL REFERENCES venues (venue_id),
	title VARCHAR(255) NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	category_id UUID NOT NULL,
	event_date TIMESTAMPTZ NOT NULL,
	artist VARCHAR(255) NOT NULL DEFAULT '',
	ticket_price_amount NUMERIC(10, 2) NOT NULL,
	ticket_price_currency CHAR(3) NOT NULL,
	image_ref VARCHAR(512) NOT NULL DEFAULT '',
	event_day DATE NOT NULL,
	status VARCHAR(16) NOT NULL DEFAULT 'pending'
		CHECK (status IN ('pending', 'approved', 'rejected')),
	payment_status VARCHAR(16) NOT NULL DEFAULT 'pending'
		CHECK (payment_status IN ('pending', 'paid')),
	requested_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	CHECK (payment_status = 'pending' OR status = 'approved')
);

-- exclusive occupancy: at most one approved booking per venue per calendar day
CREATE UNIQUE INDEX IF NOT EXISTS bookings_approved_slot_idx
	ON bookings (venue_id, event_day)
	WHERE status = 'approved';

CREATE TABLE IF NOT EXISTS events (
	event_id UUID PRIMARY KEY,
	booking_id UUID UNIQUE,
	venue_id UUID NOT NULL REFERENCES venues (venue_id),
	organizer_id UUID NOT NULL,
	category_id UUID NOT NULL,
	title VARCHAR(255) NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	event_date TIMESTAMPTZ NOT NULL,
	artist VARCHAR(255) NOT NULL DEFAULT '',
	ticket_price_amount NUMERIC(10, 2) NOT NULL,
	ticket_price_currency CHAR(3) NOT NULL,
	image_ref VARCHAR(512) NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS receipts (
	receipt_id UUID PRIMARY KEY,
	booking_id UUID UNIQUE,
	organizer_id UUID NOT NULL,
	venue_id UUID NOT NULL,
	amount_paid_amount NUMERIC(10, 2) NOT NULL,
	amount_paid_currency CHAR(3) NOT NULL,
	transaction_id VARCHAR(255) NOT NULL UNIQUE,
	payment_date TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS tickets (
	ticket_id UUID PRIMARY KEY,
	buyer_id UUID NOT NULL,
	event_id UUID NOT NULL REFERENCES events (event_id),
	quantity INT NOT NULL CHECK (quantity > 0),
	price_amount NUMERIC(10, 2) NOT NULL,
	price_currency CHAR(3) NOT NULL,
	ticket_code VARCHAR(64) NOT NULL UNIQUE,
	transaction_id VARCHAR(255) NOT NULL UNIQUE,
	purchase_date TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS read_model_ops_bookings (
	booking_id UUID PRIMARY KEY,
	payload JSONB NOT NULL
);

CREATE TABLE IF NOT EXISTS data_lake_events (
	event_id UUID PRIMARY KEY,
	published_at TIMESTAMPTZ NOT NULL,
	event_name VARCHAR(255) NOT NULL,
	event_payload JSONB NOT NULL
);
`
