package lifecycle

import "github.com/agrisetu/agrisetu-backend/pkg/enums"

// The four transition tables. Terminal statuses (completed, cancelled,
// returned, failed, delivered for deliveries) carry no map entry so every
// request out of them is rejected.
var tables = map[enums.EntityType]*Table{
	enums.EntityTypeOrder: {
		Entity: enums.EntityTypeOrder,
		Transitions: map[string][]string{
			string(enums.OrderStatusPlaced):         {string(enums.OrderStatusProcessing), string(enums.OrderStatusConfirmed), string(enums.OrderStatusCancelled)},
			string(enums.OrderStatusProcessing):     {string(enums.OrderStatusConfirmed), string(enums.OrderStatusPacked), string(enums.OrderStatusCancelled)},
			string(enums.OrderStatusConfirmed):      {string(enums.OrderStatusPacked), string(enums.OrderStatusCancelled)},
			string(enums.OrderStatusPacked):         {string(enums.OrderStatusShipped), string(enums.OrderStatusCancelled)},
			string(enums.OrderStatusShipped):        {string(enums.OrderStatusOutForDelivery), string(enums.OrderStatusCancelled)},
			string(enums.OrderStatusOutForDelivery): {string(enums.OrderStatusDelivered), string(enums.OrderStatusCancelled)},
			string(enums.OrderStatusDelivered):      {string(enums.OrderStatusCompleted), string(enums.OrderStatusReturned)},
		},
		Triggers: map[string]bool{
			string(enums.OrderStatusCompleted): true,
		},
		Refunds: map[string]bool{
			string(enums.OrderStatusCancelled): true,
			string(enums.OrderStatusReturned):  true,
		},
	},
	enums.EntityTypeLabourBooking: {
		Entity: enums.EntityTypeLabourBooking,
		Transitions: map[string][]string{
			string(enums.LabourBookingStatusPending):     {string(enums.LabourBookingStatusAssigned), string(enums.LabourBookingStatusCancelled)},
			string(enums.LabourBookingStatusAssigned):    {string(enums.LabourBookingStatusAccepted), string(enums.LabourBookingStatusCancelled)},
			string(enums.LabourBookingStatusAccepted):    {string(enums.LabourBookingStatusWorkStarted), string(enums.LabourBookingStatusCancelled)},
			string(enums.LabourBookingStatusWorkStarted): {string(enums.LabourBookingStatusCompleted), string(enums.LabourBookingStatusCancelled)},
		},
		Triggers: map[string]bool{
			string(enums.LabourBookingStatusCompleted): true,
		},
		Refunds: map[string]bool{
			string(enums.LabourBookingStatusCancelled): true,
		},
	},
	enums.EntityTypeTransportBooking: {
		Entity: enums.EntityTypeTransportBooking,
		Transitions: map[string][]string{
			string(enums.TransportBookingStatusPending):    {string(enums.TransportBookingStatusAssigned), string(enums.TransportBookingStatusCancelled)},
			string(enums.TransportBookingStatusAssigned):   {string(enums.TransportBookingStatusAccepted), string(enums.TransportBookingStatusCancelled)},
			string(enums.TransportBookingStatusAccepted):   {string(enums.TransportBookingStatusInProgress), string(enums.TransportBookingStatusCancelled)},
			string(enums.TransportBookingStatusInProgress): {string(enums.TransportBookingStatusCompleted), string(enums.TransportBookingStatusCancelled)},
		},
		Triggers: map[string]bool{
			string(enums.TransportBookingStatusCompleted): true,
		},
		Refunds: map[string]bool{
			string(enums.TransportBookingStatusCancelled): true,
		},
	},
	enums.EntityTypeDeliveryAssignment: {
		Entity: enums.EntityTypeDeliveryAssignment,
		Transitions: map[string][]string{
			string(enums.DeliveryStatusPending):  {string(enums.DeliveryStatusAssigned), string(enums.DeliveryStatusCancelled)},
			string(enums.DeliveryStatusAssigned): {string(enums.DeliveryStatusAccepted), string(enums.DeliveryStatusCancelled)},
			string(enums.DeliveryStatusAccepted): {string(enums.DeliveryStatusPickedUp), string(enums.DeliveryStatusCancelled)},
			string(enums.DeliveryStatusPickedUp): {string(enums.DeliveryStatusDelivered), string(enums.DeliveryStatusFailed)},
		},
		Triggers: map[string]bool{
			string(enums.DeliveryStatusDelivered): true,
		},
		Refunds: map[string]bool{
			string(enums.DeliveryStatusCancelled): true,
		},
	},
}
