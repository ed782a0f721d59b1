package outbox

// topic is the forwarder's spool: events published inside database
// transactions land here and are forwarded to the message broker.
const topic = "events_to_forward"
