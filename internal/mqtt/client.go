package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"crockpot_twin/internal/logger"
	"crockpot_twin/internal/models"
	"crockpot_twin/internal/service"
)

// ClientConfig holds the broker connection and topic layout.
type ClientConfig struct {
	Broker       string
	ClientID     string
	Username     string
	Password     string
	StatusTopic  string // e.g. "crockpot/status"
	CommandTopic string // e.g. "crockpot/command"
}

// command is the wire shape accepted on the command topic.
type command struct {
	Action string `json:"action"`
	State  string `json:"state,omitempty"`
	Name   string `json:"name,omitempty"`
	Active bool   `json:"active,omitempty"`
}

// Client bridges the appliance to an MQTT broker: status snapshots go
// out on the status topic, remote commands come in on the command topic.
type Client struct {
	client paho.Client
	cmds   service.Appliance
	log    *logger.Logger

	statusTopic  string
	commandTopic string
}

// NewClient connects to the broker and subscribes to the command topic.
func NewClient(cfg ClientConfig, cmds service.Appliance, log *logger.Logger) (*Client, error) {
	opts := paho.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	opts.SetUsername(cfg.Username)
	opts.SetPassword(cfg.Password)
	opts.SetAutoReconnect(true)
	opts.SetKeepAlive(60 * time.Second)
	opts.SetPingTimeout(10 * time.Second)
	opts.SetOnConnectHandler(func(paho.Client) {
		log.Infow("mqtt connected", "broker", cfg.Broker)
	})
	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		log.Warnw("mqtt connection lost", "error", err)
	})

	c := &Client{
		client:       paho.NewClient(opts),
		cmds:         cmds,
		log:          log,
		statusTopic:  cfg.StatusTopic,
		commandTopic: cfg.CommandTopic,
	}

	if token := c.client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connect to mqtt broker: %w", token.Error())
	}

	if c.commandTopic != "" {
		token := c.client.Subscribe(c.commandTopic, 1, c.handleCommand)
		if token.Wait() && token.Error() != nil {
			return nil, fmt.Errorf("subscribe to %s: %w", c.commandTopic, token.Error())
		}
		log.Infow("mqtt subscribed", "topic", c.commandTopic)
	}

	return c, nil
}

// Observe publishes a status snapshot. Fire and forget at QoS 0; a
// stale sample is worthless by the next tick.
func (c *Client) Observe(status models.Status) {
	if c.statusTopic == "" {
		return
	}
	payload, err := json.Marshal(status)
	if err != nil {
		return
	}
	c.client.Publish(c.statusTopic, 0, true, payload)
}

func (c *Client) handleCommand(_ paho.Client, msg paho.Message) {
	var cmd command
	if err := json.Unmarshal(msg.Payload(), &cmd); err != nil {
		c.log.Warnw("mqtt command rejected", "topic", msg.Topic(), "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var err error
	switch strings.ToLower(strings.TrimSpace(cmd.Action)) {
	case "set_state":
		var state models.HeatState
		if state, err = models.ParseHeatState(cmd.State); err == nil {
			err = c.cmds.SetState(ctx, state)
		}
	case "start_schedule":
		err = c.cmds.StartSchedule(ctx, cmd.Name)
	case "stop_schedule":
		err = c.cmds.StopSchedule(ctx)
	case "inject_fault":
		err = c.cmds.InjectFault(ctx, cmd.Active)
	default:
		err = fmt.Errorf("unknown action %q", cmd.Action)
	}

	if err != nil {
		c.log.Warnw("mqtt command failed", "action", cmd.Action, "error", err)
		return
	}
	c.log.Infow("mqtt command applied", "action", cmd.Action)
}

// Close disconnects from the broker.
func (c *Client) Close() {
	c.client.Disconnect(250)
	c.log.Infow("mqtt disconnected")
}
