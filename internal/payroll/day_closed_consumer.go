package payroll

import (
	"context"
	"encoding/json"
	"time"

	"go-presensi/internal/events"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// DayClosedConsumer folds attendance_day_closed events into the monthly
// summaries that salary computation reads. Processing is ordered per
// employee by the producer's hash balancer; a failed fold is retried by
// withholding the commit.
type DayClosedConsumer struct {
	reader  *kafka.Reader
	service Service
	logger  *zap.Logger
}

func NewDayClosedConsumer(
	broker string,
	groupID string,
	service Service,
	logger ...*zap.Logger,
) *DayClosedConsumer {
	l := zap.L().Named("payroll.consumer.day_closed")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.consumer.day_closed")
	}

	return &DayClosedConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        []string{broker},
			Topic:          events.AttendanceDayClosedTopic,
			GroupID:        groupID,
			CommitInterval: time.Second,
			StartOffset:    kafka.FirstOffset,
		}),
		service: service,
		logger:  l,
	}
}

func (c *DayClosedConsumer) Start(ctx context.Context) {
	go func() {
		for {
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				c.logger.Error("consume attendance_day_closed failed", zap.Error(err))
				continue
			}

			var event events.AttendanceDayClosedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				c.logger.Error("decode attendance_day_closed event failed", zap.Error(err))
				if commitErr := c.reader.CommitMessages(ctx, msg); commitErr != nil {
					c.logger.Error("commit invalid attendance_day_closed event failed", zap.Error(commitErr))
				}
				continue
			}

			if err := c.service.ApplyDayClosed(ctx, event); err != nil {
				c.logger.Error("fold attendance day into summary failed",
					zap.String("employee_id", event.EmployeeID),
					zap.String("attendance_date", event.AttendanceDate),
					zap.Error(err),
				)
				continue
			}

			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				c.logger.Error("commit attendance_day_closed event failed", zap.Error(err))
				continue
			}
		}
	}()
}

func (c *DayClosedConsumer) Close() error {
	return c.reader.Close()
}
