package enums

// OutboxEventType names the domain events written to the transactional outbox.
type OutboxEventType string

const (
	EventSettlementCompleted OutboxEventType = "settlement.completed"
	EventEntityCancelled     OutboxEventType = "entity.cancelled"
	EventWalletAdjusted      OutboxEventType = "wallet.adjusted"
)

// OutboxAggregateType names the aggregate an outbox event belongs to.
type OutboxAggregateType string

const (
	AggregateOrder              OutboxAggregateType = "order"
	AggregateLabourBooking      OutboxAggregateType = "labour_booking"
	AggregateTransportBooking   OutboxAggregateType = "transport_booking"
	AggregateDeliveryAssignment OutboxAggregateType = "delivery_assignment"
	AggregateWallet             OutboxAggregateType = "wallet"
)
