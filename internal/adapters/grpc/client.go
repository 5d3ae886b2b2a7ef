package grpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"
)

// EconomyClient calls the economy service and returns plain documents
type EconomyClient struct {
	conn *grpc.ClientConn
}

// NewEconomyClient connects to the service at target (host:port)
func NewEconomyClient(target string, opts ...grpc.DialOption) (*EconomyClient, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to economy service: %w", err)
	}
	return &EconomyClient{conn: conn}, nil
}

// Close closes the gRPC connection
func (c *EconomyClient) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// GetOverview fetches the overview of one category
func (c *EconomyClient) GetOverview(ctx context.Context, kingdomID int, category string) (Document, error) {
	return c.invoke(ctx, MethodGetOverview, Document{
		"kingdom_id": kingdomID,
		"category":   category,
	})
}

// PlaceOrder submits an order. A non-empty requestID makes retries idempotent.
func (c *EconomyClient) PlaceOrder(ctx context.Context, kingdomID int, category string, order Document, requestID string) (Document, error) {
	if requestID != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, RequestIDHeader, requestID)
	}
	if order == nil {
		order = Document{}
	}
	return c.invoke(ctx, MethodPlaceOrder, Document{
		"kingdom_id": kingdomID,
		"category":   category,
		"order":      order,
	})
}

// ManageProjects applies a clear, assign or add operation. Clear takes
// project names; assign and add take counts.
func (c *EconomyClient) ManageProjects(ctx context.Context, kingdomID int, action string, projects interface{}) (Document, error) {
	doc := Document{
		"kingdom_id": kingdomID,
		"action":     action,
	}
	switch p := projects.(type) {
	case []string:
		names := make([]interface{}, len(p))
		for i, name := range p {
			names[i] = name
		}
		doc["projects"] = names
	case map[string]int:
		doc["projects"] = intsDoc(p)
	}
	return c.invoke(ctx, MethodManageProjects, doc)
}

// UpdateSpending changes the spending split; omitted keys keep their value
func (c *EconomyClient) UpdateSpending(ctx context.Context, kingdomID int, percents map[string]float64) (Document, error) {
	doc := floatsDoc(percents)
	doc["kingdom_id"] = kingdomID
	return c.invoke(ctx, MethodUpdateSpending, doc)
}

// Time returns the service's reference instant
func (c *EconomyClient) Time(ctx context.Context) (Document, error) {
	return c.invoke(ctx, MethodTime, Document{})
}

func (c *EconomyClient) invoke(ctx context.Context, method string, doc Document) (Document, error) {
	in, err := structpb.NewStruct(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, method, in, out); err != nil {
		return nil, fromStatus(err)
	}
	return out.AsMap(), nil
}
