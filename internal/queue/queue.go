package queue

import (
	"encoding/json"

	"github.com/streadway/amqp"
)

// DispatchQueueName is the RabbitMQ queue carrying campaign dispatch jobs.
const DispatchQueueName = "campaign_dispatch"

// DispatchJob is the wire payload for one queued dispatch.
type DispatchJob struct {
	CampaignID int `json:"campaign_id"`
}

// Publisher enqueues dispatch jobs for scheduled campaigns.
type Publisher interface {
	PublishDispatch(campaignID int) error
}

// AMQPPublisher dials RabbitMQ per publish. Scheduling a campaign is a
// rare admin action, so a persistent channel is not kept around.
type AMQPPublisher struct {
	URL string
}

func (p *AMQPPublisher) PublishDispatch(campaignID int) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		return err
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		DispatchQueueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}

	body, err := json.Marshal(DispatchJob{CampaignID: campaignID})
	if err != nil {
		return err
	}

	return ch.Publish(
		"",
		q.Name,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

var _ Publisher = (*AMQPPublisher)(nil)
