package sqlinline

const QEnsureSchema = `--sql 5b9e0d14-7a23-4c8f-a6e1-d3f24b7c0958
create table if not exists integration_tokens (
    id uuid primary key default gen_random_uuid(),
    provider text not null unique,
    token text not null,
    properties jsonb not null default '{}'::jsonb,
    created_at timestamptz not null default now(),
    updated_at timestamptz not null default now()
);
create table if not exists generation_events (
    id uuid primary key,
    session_id text not null,
    decade text not null,
    outcome text not null,
    error_kind text,
    latency_ms int not null default 0,
    created_at timestamptz not null default now()
);
create index if not exists generation_events_created_at_idx on generation_events (created_at);
`
